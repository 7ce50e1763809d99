// Package renderer turns the editor state into a frame of terminal drawing
// operations.
//
// A frame holds, in order: the visible text rows (or "~" filler past the end
// of the buffer, and a centered welcome banner for an empty unnamed buffer),
// a reverse-video status bar, a message bar, and the final cursor position.
// Every row is cleared to the end of the line so stale content never
// survives a redraw.
//
// Frames are backend-neutral. Encode produces the VT100/ANSI byte stream for
// a frame and Flush writes it in a single call; the backend package replays
// frames onto a tcell screen instead.
//
// Usage:
//
//	r := renderer.New(renderer.WithVersion("1.0.0"))
//	frame, err := r.Draw(renderer.State{Doc: buf, Cursor: eng.Cursor()})
//	if err != nil {
//		return err
//	}
//	err = renderer.Flush(os.Stdout, frame)
package renderer
