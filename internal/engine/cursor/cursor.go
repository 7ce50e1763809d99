package cursor

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/textmagic/internal/engine/tabstop"
)

// ErrUnknownDirection is returned for a direction a movement does not support.
var ErrUnknownDirection = errors.New("unknown direction")

// DefaultWideThreshold is the terminal width above which the viewport is
// narrowed to half the terminal to keep long lines readable.
const DefaultWideThreshold = 100

// Direction identifies a cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	Home
	End
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Home:
		return "home"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Rows is the read-only view of the line store the cursor moves over.
type Rows interface {
	RowCount() int
	Row(i int) (string, error)
}

// Option configures a Cursor.
type Option func(*Cursor)

// WithTabWidth sets the tab stop used to compute RenderX.
func WithTabWidth(width int) Option {
	return func(c *Cursor) {
		c.tabs = tabstop.New(width)
	}
}

// WithWideThreshold sets the terminal width above which the viewport is
// halved. Zero disables the clamp.
func WithWideThreshold(width int) Option {
	return func(c *Cursor) {
		if width >= 0 {
			c.wideThreshold = width
		}
	}
}

// Cursor holds the cursor position and viewport state.
type Cursor struct {
	X, Y      int // logical column and row
	RenderX   int // column in the rendered row, set by Scroll
	RowOffset int // first visible row
	ColOffset int // first visible rendered column
	Height    int // visible rows
	Width     int // visible columns

	tabs          *tabstop.Expander
	wideThreshold int
}

// New creates a cursor at the origin for a viewport of the given size.
func New(width, height int, opts ...Option) *Cursor {
	c := &Cursor{
		tabs:          tabstop.Default(),
		wideThreshold: DefaultWideThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Resize(width, height)
	return c
}

// Resize updates the viewport dimensions.
func (c *Cursor) Resize(width, height int) {
	if c.wideThreshold > 0 && width > c.wideThreshold {
		width = width/2 + 1
	}
	c.Width = max(width, 1)
	c.Height = max(height, 1)
}

// ScreenPosition returns the cursor position relative to the viewport.
// Only meaningful after Scroll.
func (c *Cursor) ScreenPosition() (x, y int) {
	return c.RenderX - c.ColOffset, c.Y - c.RowOffset
}

// RenderedColumn returns the rendered column of X within content.
// It is computed from the logical content alone.
func (c *Cursor) RenderedColumn(content string) int {
	return c.tabs.Column([]rune(content), c.X)
}

// Scroll recomputes RenderX and moves the viewport so the cursor is visible.
func (c *Cursor) Scroll(rows Rows) error {
	c.RenderX = 0
	if c.Y < rows.RowCount() {
		row, err := rows.Row(c.Y)
		if err != nil {
			return err
		}
		c.RenderX = c.RenderedColumn(row)
	}

	c.RowOffset = min(c.RowOffset, c.Y)
	if c.Y >= c.RowOffset+c.Height {
		c.RowOffset = c.Y - c.Height + 1
	}
	c.ColOffset = min(c.ColOffset, c.RenderX)
	if c.RenderX >= c.ColOffset+c.Width {
		c.ColOffset = c.RenderX - c.Width + 1
	}
	return nil
}

// Move applies a single-step movement.
func (c *Cursor) Move(dir Direction, rows Rows) error {
	count := rows.RowCount()

	switch dir {
	case Up:
		if c.Y > 0 {
			c.Y--
		}
	case Down:
		if c.Y < count {
			c.Y++
		}
	case Left:
		if c.X > 0 {
			c.X--
		} else if c.Y > 0 {
			c.Y--
			n, err := rowLen(rows, c.Y)
			if err != nil {
				return err
			}
			c.X = n
		}
	case Right:
		if c.Y < count {
			n, err := rowLen(rows, c.Y)
			if err != nil {
				return err
			}
			if c.X < n {
				c.X++
			} else {
				c.Y++
				c.X = 0
			}
		}
	case Home:
		c.X = 0
	case End:
		n, err := rowLen(rows, c.Y)
		if err != nil {
			return err
		}
		c.X = n
	default:
		return fmt.Errorf("%w: %d", ErrUnknownDirection, dir)
	}

	return c.Clamp(rows)
}

// MovePage moves a full viewport up or down.
func (c *Cursor) MovePage(dir Direction, rows Rows) error {
	switch dir {
	case Up:
		c.Y = c.RowOffset
	case Down:
		c.Y = min(c.RowOffset+c.Height-1, rows.RowCount())
	default:
		return fmt.Errorf("%w: page %s", ErrUnknownDirection, dir)
	}

	for i := 0; i < c.Height; i++ {
		if err := c.Move(dir, rows); err != nil {
			return err
		}
	}
	return c.Clamp(rows)
}

// MoveWord jumps to the start of the previous or next whitespace-delimited
// word on the current row. Word jumps never cross rows: when the row has no
// word start in that direction the cursor takes a single Move step instead.
func (c *Cursor) MoveWord(dir Direction, rows Rows) error {
	if dir != Left && dir != Right {
		return c.Move(dir, rows)
	}
	if c.Y >= rows.RowCount() {
		return c.Move(dir, rows)
	}
	row, err := rows.Row(c.Y)
	if err != nil {
		return err
	}
	content := []rune(row)

	if dir == Right {
		i := min(c.X, len(content))
		for i < len(content) && !unicode.IsSpace(content[i]) {
			i++
		}
		for i < len(content) && unicode.IsSpace(content[i]) {
			i++
		}
		if i >= len(content) {
			return c.Move(Right, rows)
		}
		c.X = i
		return nil
	}

	if c.X == 0 {
		return c.Move(Left, rows)
	}
	c.X = PrevWordStart(content, c.X)
	return nil
}

// PrevWordStart returns the column of the start of the word before col,
// skipping any whitespace directly before col first.
func PrevWordStart(content []rune, col int) int {
	i := min(col, len(content))
	for i > 0 && unicode.IsSpace(content[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(content[i-1]) {
		i--
	}
	return i
}

// Clamp restores the position invariants after the buffer changed under
// the cursor: Y within [0, RowCount] and X within the row.
func (c *Cursor) Clamp(rows Rows) error {
	c.Y = max(0, min(c.Y, rows.RowCount()))
	n, err := rowLen(rows, c.Y)
	if err != nil {
		return err
	}
	c.X = max(0, min(c.X, n))
	return nil
}

// rowLen returns the rune length of row y, or 0 for the virtual row.
func rowLen(rows Rows, y int) (int, error) {
	if y >= rows.RowCount() {
		return 0, nil
	}
	row, err := rows.Row(y)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(row), nil
}
