// Package engine is the edit engine of the editor.
//
// An Engine owns a line store (package buffer) and a cursor/viewport model
// (package cursor) and applies editing commands to both so that they stay
// consistent: every command leaves the cursor inside the buffer and every
// changed row re-rendered.
//
// Basic usage:
//
//	buf, _ := buffer.Open("notes.txt")
//	e := engine.New(buf, 80, 22)
//
//	_ = e.InsertChar('H')
//	_ = e.InsertChar('i')
//	_ = e.InsertNewline()
//	_ = e.Scroll() // before every redraw
//
//	if _, err := e.Save(); errors.Is(err, engine.ErrNoPath) {
//	    // ask for a file name, then e.SaveAs(name)
//	}
//
// # Dirty Tracking
//
// The engine counts content changes since the last successful save. Each
// InsertChar, InsertNewline, single-rune delete and row join adds one; a
// word delete adds one per removed rune. Save resets the counter only when
// the write succeeds.
//
// # Word Wrap
//
// With word wrap enabled (the default), inserting at or beyond the last
// visible column starts a new row: a space simply opens an empty row below,
// any other rune carries the trailing word of the row down with it.
package engine
