// Package cursor tracks the logical cursor and the scrolled viewport.
//
// The cursor lives in logical coordinates: X is a rune column into the
// current row's content and Y is a row index that may equal the row count
// (the virtual row past the end of the buffer). RenderX is derived from X by
// walking the row's content with the tab stop rule, and Scroll keeps the
// viewport offsets such that the cursor is always on screen:
//
//	RowOffset <= Y       < RowOffset+Height
//	ColOffset <= RenderX < ColOffset+Width
//
// Movement never leaves X beyond the length of the row the cursor lands on.
package cursor
