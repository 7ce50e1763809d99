package cursor

import (
	"errors"
	"math/rand"
	"testing"
	"unicode/utf8"

	"github.com/dshills/textmagic/internal/engine/buffer"
)

func newRows(lines ...string) *buffer.Buffer {
	return buffer.NewFromLines(lines)
}

func TestNewClampsWideTerminal(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{80, 80},
		{100, 100},
		{101, 51},
		{200, 101},
	}

	for _, tt := range tests {
		c := New(tt.width, 24)
		if c.Width != tt.expected {
			t.Errorf("New(%d): expected width %d, got %d", tt.width, tt.expected, c.Width)
		}
	}

	c := New(200, 24, WithWideThreshold(0))
	if c.Width != 200 {
		t.Errorf("threshold disabled: expected width 200, got %d", c.Width)
	}
}

func TestRenderedColumn(t *testing.T) {
	c := New(80, 24)
	row := "a\tb"

	tests := []struct {
		x        int
		expected int
	}{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},
	}

	for _, tt := range tests {
		c.X = tt.x
		if got := c.RenderedColumn(row); got != tt.expected {
			t.Errorf("RenderedColumn at %d: expected %d, got %d", tt.x, tt.expected, got)
		}
	}
}

func TestRenderedColumnMatchesRender(t *testing.T) {
	rows := newRows("\tfoo\tbar", "x\t\ty", "abc\tdef\tghij\t")
	c := New(80, 24)

	for y := 0; y < rows.RowCount(); y++ {
		content, _ := rows.Row(y)
		render, _ := rows.RenderedRow(y)
		runes := []rune(content)
		rendered := []rune(render)

		for x := 0; x <= len(runes); x++ {
			c.X = x
			col := c.RenderedColumn(content)
			if x < len(runes) && runes[x] != '\t' && rendered[col] != runes[x] {
				t.Errorf("row %d col %d: render[%d]=%q, content=%q", y, x, col, rendered[col], runes[x])
			}
			if x == len(runes) && col != len(rendered) {
				t.Errorf("row %d: end column %d, render length %d", y, col, len(rendered))
			}
		}
	}
}

func TestMoveLeftWrapsToPreviousRow(t *testing.T) {
	rows := newRows("hello", "x")
	c := New(80, 24)
	c.Y = 1

	if err := c.Move(Left, rows); err != nil {
		t.Fatal(err)
	}
	if c.X != 5 || c.Y != 0 {
		t.Errorf("expected (5, 0), got (%d, %d)", c.X, c.Y)
	}

	c.X, c.Y = 0, 0
	_ = c.Move(Left, rows)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("left at origin should stay, got (%d, %d)", c.X, c.Y)
	}
}

func TestMoveRightWrapsToNextRow(t *testing.T) {
	rows := newRows("ab", "cd")
	c := New(80, 24)
	c.X = 2

	_ = c.Move(Right, rows)
	if c.X != 0 || c.Y != 1 {
		t.Errorf("expected (0, 1), got (%d, %d)", c.X, c.Y)
	}

	// End of last row wraps onto the virtual row.
	c.X = 2
	_ = c.Move(Right, rows)
	if c.X != 0 || c.Y != 2 {
		t.Errorf("expected (0, 2), got (%d, %d)", c.X, c.Y)
	}

	// Nothing beyond the virtual row.
	_ = c.Move(Right, rows)
	if c.X != 0 || c.Y != 2 {
		t.Errorf("expected to stay at (0, 2), got (%d, %d)", c.X, c.Y)
	}
}

func TestMoveUpDownClampColumn(t *testing.T) {
	rows := newRows("a long line", "ab", "")
	c := New(80, 24)
	c.X = 8

	_ = c.Move(Down, rows)
	if c.X != 2 || c.Y != 1 {
		t.Errorf("expected (2, 1), got (%d, %d)", c.X, c.Y)
	}
	_ = c.Move(Down, rows)
	_ = c.Move(Down, rows)
	if c.X != 0 || c.Y != 3 {
		t.Errorf("expected virtual row (0, 3), got (%d, %d)", c.X, c.Y)
	}
	_ = c.Move(Down, rows)
	if c.Y != 3 {
		t.Errorf("down past virtual row: expected 3, got %d", c.Y)
	}
	for i := 0; i < 5; i++ {
		_ = c.Move(Up, rows)
	}
	if c.Y != 0 {
		t.Errorf("expected row 0, got %d", c.Y)
	}
}

func TestMoveHomeEnd(t *testing.T) {
	rows := newRows("héllo")
	c := New(80, 24)
	c.X = 2

	_ = c.Move(End, rows)
	if c.X != 5 {
		t.Errorf("End: expected 5, got %d", c.X)
	}
	_ = c.Move(Home, rows)
	if c.X != 0 {
		t.Errorf("Home: expected 0, got %d", c.X)
	}

	c.Y = 1
	_ = c.Move(End, rows)
	if c.X != 0 {
		t.Errorf("End on virtual row: expected 0, got %d", c.X)
	}
}

func TestMoveUnknownDirection(t *testing.T) {
	c := New(80, 24)
	if err := c.Move(Direction(42), newRows()); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("expected ErrUnknownDirection, got %v", err)
	}
}

func TestMoveNeverBreaksInvariants(t *testing.T) {
	rows := newRows("alpha", "", "\tbeta gamma", "δέλτα", "e")
	c := New(10, 3)
	rng := rand.New(rand.NewSource(7))
	dirs := []Direction{Up, Down, Left, Right, Home, End}

	for i := 0; i < 2000; i++ {
		var err error
		switch rng.Intn(3) {
		case 0:
			err = c.Move(dirs[rng.Intn(len(dirs))], rows)
		case 1:
			err = c.MoveWord(dirs[rng.Intn(len(dirs))], rows)
		default:
			err = c.MovePage(dirs[rng.Intn(2)], rows)
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if c.Y < 0 || c.Y > rows.RowCount() {
			t.Fatalf("step %d: row %d outside [0, %d]", i, c.Y, rows.RowCount())
		}
		limit := 0
		if c.Y < rows.RowCount() {
			row, _ := rows.Row(c.Y)
			limit = utf8.RuneCountInString(row)
		}
		if c.X < 0 || c.X > limit {
			t.Fatalf("step %d: column %d outside [0, %d] on row %d", i, c.X, limit, c.Y)
		}
		if err := c.Scroll(rows); err != nil {
			t.Fatalf("step %d: scroll: %v", i, err)
		}
		if c.Y < c.RowOffset || c.Y >= c.RowOffset+c.Height {
			t.Fatalf("step %d: row %d not visible at offset %d", i, c.Y, c.RowOffset)
		}
		if c.RenderX < c.ColOffset || c.RenderX >= c.ColOffset+c.Width {
			t.Fatalf("step %d: render column %d not visible at offset %d", i, c.RenderX, c.ColOffset)
		}
	}
}

func TestScroll(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	rows := newRows(lines...)
	c := New(80, 10)

	c.Y = 25
	if err := c.Scroll(rows); err != nil {
		t.Fatal(err)
	}
	if c.RowOffset != 16 {
		t.Errorf("scroll down: expected offset 16, got %d", c.RowOffset)
	}

	c.Y = 3
	_ = c.Scroll(rows)
	if c.RowOffset != 3 {
		t.Errorf("scroll up: expected offset 3, got %d", c.RowOffset)
	}

	x, y := c.ScreenPosition()
	if x != 0 || y != 0 {
		t.Errorf("expected screen position (0, 0), got (%d, %d)", x, y)
	}
}

func TestScrollHorizontalUsesRenderColumn(t *testing.T) {
	rows := newRows("\t\t\tabc")
	c := New(8, 5)
	c.X = 4 // after three tabs and 'a': render column 13

	if err := c.Scroll(rows); err != nil {
		t.Fatal(err)
	}
	if c.RenderX != 13 {
		t.Fatalf("expected render x 13, got %d", c.RenderX)
	}
	if c.ColOffset != 6 {
		t.Errorf("expected column offset 6, got %d", c.ColOffset)
	}

	c.X = 0
	_ = c.Scroll(rows)
	if c.ColOffset != 0 {
		t.Errorf("expected column offset 0, got %d", c.ColOffset)
	}
}

func TestScrollVirtualRow(t *testing.T) {
	rows := newRows("abc")
	c := New(80, 5)
	c.Y = 1

	_ = c.Scroll(rows)
	if c.RenderX != 0 {
		t.Errorf("expected render x 0 on virtual row, got %d", c.RenderX)
	}
}

func TestMovePage(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "row"
	}
	rows := newRows(lines...)
	c := New(80, 10)

	if err := c.MovePage(Down, rows); err != nil {
		t.Fatal(err)
	}
	if c.Y != 19 {
		t.Errorf("page down: expected row 19, got %d", c.Y)
	}
	_ = c.Scroll(rows)

	_ = c.MovePage(Down, rows)
	_ = c.Scroll(rows)
	_ = c.MovePage(Down, rows)
	if c.Y != 30 {
		t.Errorf("page down at end: expected virtual row 30, got %d", c.Y)
	}
	_ = c.Scroll(rows)

	_ = c.MovePage(Up, rows)
	if c.Y != 11 {
		t.Errorf("page up: expected row 11, got %d", c.Y)
	}

	if err := c.MovePage(Left, rows); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("expected ErrUnknownDirection, got %v", err)
	}
}

func TestMoveWordRight(t *testing.T) {
	rows := newRows("foo bar  baz", "next")
	c := New(80, 24)

	steps := []struct{ x, y int }{
		{4, 0},  // start of "bar"
		{9, 0},  // start of "baz"
		{10, 0}, // no further word: single step
		{11, 0},
		{12, 0},
		{0, 1}, // at row end the single step wraps
	}

	for i, want := range steps {
		if err := c.MoveWord(Right, rows); err != nil {
			t.Fatal(err)
		}
		if c.X != want.x || c.Y != want.y {
			t.Errorf("step %d: expected (%d, %d), got (%d, %d)", i, want.x, want.y, c.X, c.Y)
		}
	}
}

func TestMoveWordLeft(t *testing.T) {
	rows := newRows("prev", "foo bar  baz")
	c := New(80, 24)
	c.Y = 1
	c.X = 12

	steps := []struct{ x, y int }{
		{9, 1},
		{4, 1},
		{0, 1},
		{4, 0}, // at column 0 the single step wraps
	}

	for i, want := range steps {
		if err := c.MoveWord(Left, rows); err != nil {
			t.Fatal(err)
		}
		if c.X != want.x || c.Y != want.y {
			t.Errorf("step %d: expected (%d, %d), got (%d, %d)", i, want.x, want.y, c.X, c.Y)
		}
	}
}

func TestPrevWordStart(t *testing.T) {
	tests := []struct {
		content  string
		col      int
		expected int
	}{
		{"foo bar", 7, 4},
		{"foo bar", 5, 4},
		{"foo bar", 4, 0},
		{"foo   ", 6, 0},
		{"   ", 3, 0},
		{"x", 0, 0},
	}

	for _, tt := range tests {
		if got := PrevWordStart([]rune(tt.content), tt.col); got != tt.expected {
			t.Errorf("PrevWordStart(%q, %d): expected %d, got %d", tt.content, tt.col, tt.expected, got)
		}
	}
}
