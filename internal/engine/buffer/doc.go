// Package buffer provides the line store behind the editor.
//
// A Buffer is an ordered slice of lines in file order. Each line keeps its
// logical content (tabs stored literally) next to a rendered form in which
// tabs are expanded to the next tab stop. The rendered form is derived data:
// every method that changes a line's content regenerates it before
// returning, so callers can never observe a stale render.
//
// Columns are rune indices. A row index i is valid for 0 <= i < RowCount();
// callers that track a cursor may legitimately sit on row RowCount(), the
// virtual row past the last line, which InsertRow(RowCount(), ...) turns
// into a real one.
//
// Basic usage:
//
//	buf, err := buffer.Open("notes.txt")
//	if err != nil {
//	    return err
//	}
//	_ = buf.InsertRune(0, 0, '#')
//	n, err := buf.Save()
//
// Error Handling:
//
//   - ErrIndexOutOfRange: a row or column outside the buffer
//   - ErrNoPath: Save called on a buffer that has no associated path
//   - *IOError: the storage layer failed; wraps the os error
package buffer
