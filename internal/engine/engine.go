package engine

import (
	"unicode"

	"github.com/dshills/textmagic/internal/engine/buffer"
	"github.com/dshills/textmagic/internal/engine/cursor"
)

// Direction re-exports cursor.Direction for callers of the movement methods.
type Direction = cursor.Direction

// Re-export movement directions.
const (
	Up    = cursor.Up
	Down  = cursor.Down
	Left  = cursor.Left
	Right = cursor.Right
	Home  = cursor.Home
	End   = cursor.End
)

// Engine applies editing commands to a buffer and its cursor.
// It is not safe for concurrent use.
type Engine struct {
	buf *buffer.Buffer
	cur *cursor.Cursor

	dirty uint64

	wordWrap      bool
	wideThreshold int
}

// New creates an engine editing buf in a viewport of the given size.
func New(buf *buffer.Buffer, width, height int, opts ...Option) *Engine {
	e := &Engine{
		buf:           buf,
		wordWrap:      true,
		wideThreshold: defaultWideThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cur = cursor.New(width, height,
		cursor.WithTabWidth(buf.TabWidth()),
		cursor.WithWideThreshold(e.wideThreshold),
	)
	return e
}

// Buffer returns the line store. Callers must treat it as read-only and go
// through the engine for edits.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// Cursor returns a copy of the cursor state.
func (e *Engine) Cursor() cursor.Cursor {
	return *e.cur
}

// Dirty reports whether there are unsaved changes.
func (e *Engine) Dirty() bool {
	return e.dirty > 0
}

// DirtyCount returns the number of changes since the last save.
func (e *Engine) DirtyCount() uint64 {
	return e.dirty
}

// Resize updates the viewport size.
func (e *Engine) Resize(width, height int) {
	e.cur.Resize(width, height)
}

// Scroll recomputes the render column and viewport offsets.
// Call it before every redraw.
func (e *Engine) Scroll() error {
	return e.cur.Scroll(e.buf)
}

// Move moves the cursor one step.
func (e *Engine) Move(dir Direction) error {
	return e.cur.Move(dir, e.buf)
}

// MovePage moves the cursor one viewport up or down.
func (e *Engine) MovePage(dir Direction) error {
	return e.cur.MovePage(dir, e.buf)
}

// MoveWord moves the cursor by one word within the current row.
func (e *Engine) MoveWord(dir Direction) error {
	return e.cur.MoveWord(dir, e.buf)
}

// InsertChar inserts r at the cursor, wrapping the row when the cursor
// reaches the right edge of the viewport.
func (e *Engine) InsertChar(r rune) error {
	c := e.cur
	if c.Y == e.buf.RowCount() {
		if err := e.buf.InsertRow(c.Y, ""); err != nil {
			return err
		}
	}
	if err := e.buf.InsertRune(c.Y, c.X, r); err != nil {
		return err
	}

	if e.wordWrap && c.X >= c.Width-1 {
		if err := e.wrap(r); err != nil {
			return err
		}
	} else {
		c.X++
	}
	e.dirty++
	return nil
}

// wrap starts a new row after r was inserted at the right edge.
func (e *Engine) wrap(r rune) error {
	c := e.cur
	if r == ' ' {
		if err := e.buf.InsertRow(c.Y+1, ""); err != nil {
			return err
		}
		c.Y++
		c.X = 0
		return nil
	}

	row, err := e.buf.Row(c.Y)
	if err != nil {
		return err
	}
	content := []rune(row)
	start := trailingWordStart(content)
	if start == 0 || start == len(content) {
		// One long word, or nothing to carry: plain insertion.
		c.X++
		return nil
	}

	word, err := e.buf.TruncateRow(c.Y, start)
	if err != nil {
		return err
	}
	if err := e.buf.InsertRow(c.Y+1, word); err != nil {
		return err
	}
	c.Y++
	c.X = len(content) - start
	return nil
}

// trailingWordStart returns where the run of non-space runes ending the
// content begins. It returns len(content) when the content ends in a space.
func trailingWordStart(content []rune) int {
	i := len(content)
	for i > 0 && !unicode.IsSpace(content[i-1]) {
		i--
	}
	return i
}

// InsertNewline splits the current row at the cursor and moves the cursor to
// the start of the new row.
func (e *Engine) InsertNewline() error {
	c := e.cur
	if c.X == 0 {
		if err := e.buf.InsertRow(c.Y, ""); err != nil {
			return err
		}
	} else {
		tail, err := e.buf.TruncateRow(c.Y, c.X)
		if err != nil {
			return err
		}
		if err := e.buf.InsertRow(c.Y+1, tail); err != nil {
			return err
		}
	}
	c.X = 0
	c.Y++
	e.dirty++
	return nil
}

// DeleteChar deletes backwards from the cursor. In word mode the previous
// word and the whitespace rune before it are removed. At the start of a row
// the row is joined onto the previous one.
//
// Deleting on the virtual row or at the very start of the buffer is a no-op.
func (e *Engine) DeleteChar(word bool) error {
	c := e.cur
	if c.Y >= e.buf.RowCount() || (c.X == 0 && c.Y == 0) {
		return nil
	}

	if c.X > 0 {
		n := 1
		if word {
			row, err := e.buf.Row(c.Y)
			if err != nil {
				return err
			}
			n = wordSpan([]rune(row), c.X)
		}
		for i := 0; i < n; i++ {
			if err := e.deleteBefore(); err != nil {
				return err
			}
		}
		return nil
	}

	prevLen, err := e.buf.RowLen(c.Y - 1)
	if err != nil {
		return err
	}
	if err := e.buf.JoinRowIntoPrevious(c.Y); err != nil {
		return err
	}
	c.Y--
	c.X = prevLen
	e.dirty++
	return nil
}

// deleteBefore removes the rune left of the cursor.
func (e *Engine) deleteBefore() error {
	c := e.cur
	if err := e.buf.DeleteRune(c.Y, c.X-1); err != nil {
		return err
	}
	c.X--
	e.dirty++
	return nil
}

// wordSpan returns how many runes a word delete at col removes: the
// non-space run ending at col plus one separating whitespace rune.
func wordSpan(content []rune, col int) int {
	i := min(col, len(content))
	for i > 0 && !unicode.IsSpace(content[i-1]) {
		i--
	}
	if i > 0 && unicode.IsSpace(content[i-1]) {
		i--
	}
	return col - i
}

// DeleteForward deletes the rune under the cursor, joining the next row when
// the cursor is at the end of a row.
func (e *Engine) DeleteForward() error {
	c := e.cur
	count := e.buf.RowCount()
	if c.Y >= count {
		return nil
	}
	if c.Y == count-1 {
		n, err := e.buf.RowLen(c.Y)
		if err != nil {
			return err
		}
		if c.X >= n {
			return nil
		}
	}
	if err := e.cur.Move(cursor.Right, e.buf); err != nil {
		return err
	}
	return e.DeleteChar(false)
}

// Save writes the buffer to its file and clears the dirty counter.
func (e *Engine) Save() (int, error) {
	n, err := e.buf.Save()
	if err != nil {
		return n, err
	}
	e.dirty = 0
	return n, nil
}

// SaveAs writes the buffer to path, makes it the buffer's file, and clears
// the dirty counter.
func (e *Engine) SaveAs(path string) (int, error) {
	n, err := e.buf.SaveAs(path)
	if err != nil {
		return n, err
	}
	e.dirty = 0
	return n, nil
}
