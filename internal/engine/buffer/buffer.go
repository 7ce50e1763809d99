package buffer

import (
	"strings"

	"github.com/dshills/textmagic/internal/engine/tabstop"
)

// line holds one row of the buffer.
// render is always Expand(content); only setContent writes either field.
type line struct {
	content []rune
	render  []rune
}

func (l *line) setContent(content []rune, tabs *tabstop.Expander) {
	l.content = content
	l.render = tabs.Expand(content)
}

// Buffer is the ordered line store for a single file.
// It is not safe for concurrent use; the editor mutates it from one goroutine.
type Buffer struct {
	lines []*line
	path  string
	tabs  *tabstop.Expander
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		tabs: tabstop.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromLines creates a buffer holding the given rows.
func NewFromLines(rows []string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lines = make([]*line, 0, len(rows))
	for _, row := range rows {
		b.lines = append(b.lines, b.newLine([]rune(row)))
	}
	return b
}

func (b *Buffer) newLine(content []rune) *line {
	l := &line{}
	l.setContent(content, b.tabs)
	return l
}

// Read Operations

// RowCount returns the number of rows.
func (b *Buffer) RowCount() int {
	return len(b.lines)
}

// TabWidth returns the tab stop used for rendering.
func (b *Buffer) TabWidth() int {
	return b.tabs.Width()
}

// Row returns the logical content of row i.
func (b *Buffer) Row(i int) (string, error) {
	l, err := b.line(i)
	if err != nil {
		return "", err
	}
	return string(l.content), nil
}

// RenderedRow returns the tab-expanded form of row i.
func (b *Buffer) RenderedRow(i int) (string, error) {
	l, err := b.line(i)
	if err != nil {
		return "", err
	}
	return string(l.render), nil
}

// RowLen returns the length of row i in runes.
func (b *Buffer) RowLen(i int) (int, error) {
	l, err := b.line(i)
	if err != nil {
		return 0, err
	}
	return len(l.content), nil
}

// Lines returns a copy of every row's logical content.
func (b *Buffer) Lines() []string {
	rows := make([]string, len(b.lines))
	for i, l := range b.lines {
		rows[i] = string(l.content)
	}
	return rows
}

// Text returns all rows joined with "\n", without a trailing newline.
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// Path returns the associated file path, or "" if none is set.
func (b *Buffer) Path() string {
	return b.path
}

// HasPath reports whether the buffer has an associated file path.
func (b *Buffer) HasPath() bool {
	return b.path != ""
}

// SetPath associates the buffer with a file path.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

func (b *Buffer) line(i int) (*line, error) {
	if i < 0 || i >= len(b.lines) {
		return nil, rowError(i, len(b.lines))
	}
	return b.lines[i], nil
}

// Write Operations
//
// Each of these is the only way to change a row and re-renders it.

// SetRow replaces the content of row i.
func (b *Buffer) SetRow(i int, content string) error {
	l, err := b.line(i)
	if err != nil {
		return err
	}
	l.setContent([]rune(content), b.tabs)
	return nil
}

// InsertRune inserts r into row i before column col.
// col may equal the row length to append.
func (b *Buffer) InsertRune(i, col int, r rune) error {
	l, err := b.line(i)
	if err != nil {
		return err
	}
	if col < 0 || col > len(l.content) {
		return columnError(i, col, len(l.content))
	}
	content := make([]rune, 0, len(l.content)+1)
	content = append(content, l.content[:col]...)
	content = append(content, r)
	content = append(content, l.content[col:]...)
	l.setContent(content, b.tabs)
	return nil
}

// DeleteRune removes the rune at column col of row i.
func (b *Buffer) DeleteRune(i, col int) error {
	l, err := b.line(i)
	if err != nil {
		return err
	}
	if col < 0 || col >= len(l.content) {
		return columnError(i, col, len(l.content))
	}
	content := make([]rune, 0, len(l.content)-1)
	content = append(content, l.content[:col]...)
	content = append(content, l.content[col+1:]...)
	l.setContent(content, b.tabs)
	return nil
}

// TruncateRow cuts row i down to its first at runes and returns the removed tail.
func (b *Buffer) TruncateRow(i, at int) (string, error) {
	l, err := b.line(i)
	if err != nil {
		return "", err
	}
	if at < 0 || at > len(l.content) {
		return "", columnError(i, at, len(l.content))
	}
	tail := string(l.content[at:])
	l.setContent(append([]rune(nil), l.content[:at]...), b.tabs)
	return tail, nil
}

// InsertRow inserts a new row at position i, shifting later rows down.
// i may equal RowCount() to append.
func (b *Buffer) InsertRow(i int, content string) error {
	if i < 0 || i > len(b.lines) {
		return rowError(i, len(b.lines))
	}
	b.lines = append(b.lines, nil)
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = b.newLine([]rune(content))
	return nil
}

// JoinRowIntoPrevious appends row i onto row i-1 and removes row i.
// Joining row 0 is a no-op.
func (b *Buffer) JoinRowIntoPrevious(i int) error {
	if i == 0 {
		return nil
	}
	cur, err := b.line(i)
	if err != nil {
		return err
	}
	prev := b.lines[i-1]
	content := make([]rune, 0, len(prev.content)+len(cur.content))
	content = append(content, prev.content...)
	content = append(content, cur.content...)
	prev.setContent(content, b.tabs)
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	return nil
}
