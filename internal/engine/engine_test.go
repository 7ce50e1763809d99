package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/textmagic/internal/engine/buffer"
)

func newEngine(t *testing.T, width int, lines ...string) *Engine {
	t.Helper()
	return New(buffer.NewFromLines(lines), width, 20)
}

func typeString(t *testing.T, e *Engine, s string) {
	t.Helper()
	for _, r := range s {
		if err := e.InsertChar(r); err != nil {
			t.Fatalf("InsertChar(%q): %v", r, err)
		}
	}
}

func rows(e *Engine) string {
	return strings.Join(e.Buffer().Lines(), "|")
}

func TestTypeTwoLinesIntoEmptyBuffer(t *testing.T) {
	e := newEngine(t, 80)

	typeString(t, e, "Hi")
	if err := e.InsertNewline(); err != nil {
		t.Fatal(err)
	}
	typeString(t, e, "there")

	if got := rows(e); got != "Hi|there" {
		t.Errorf("expected rows Hi|there, got %s", got)
	}
	c := e.Cursor()
	if c.X != 5 || c.Y != 1 {
		t.Errorf("expected cursor (5, 1), got (%d, %d)", c.X, c.Y)
	}
	if !e.Dirty() {
		t.Error("engine should be dirty after typing")
	}
}

func TestInsertCharAppendsRowOnVirtualRow(t *testing.T) {
	e := newEngine(t, 80, "one")
	_ = e.Move(Down)

	if err := e.InsertChar('x'); err != nil {
		t.Fatal(err)
	}
	if got := rows(e); got != "one|x" {
		t.Errorf("expected one|x, got %s", got)
	}
	if e.DirtyCount() != 1 {
		t.Errorf("expected a single dirty increment, got %d", e.DirtyCount())
	}
}

func TestInsertThenDeleteRestores(t *testing.T) {
	lines := []string{"hello", "\tindented", "", "multi byte é"}

	for y, line := range lines {
		for x := 0; x <= len([]rune(line)); x++ {
			for _, r := range []rune{'z', '\t', ' ', 'ß'} {
				e := newEngine(t, 80, lines...)
				e.cur.X, e.cur.Y = x, y

				if err := e.InsertChar(r); err != nil {
					t.Fatal(err)
				}
				if err := e.DeleteChar(false); err != nil {
					t.Fatal(err)
				}

				got, _ := e.Buffer().Row(y)
				if got != line {
					t.Errorf("row %d col %d rune %q: expected %q, got %q", y, x, r, line, got)
				}
				if e.cur.X != x || e.cur.Y != y {
					t.Errorf("row %d col %d rune %q: cursor (%d, %d)", y, x, r, e.cur.X, e.cur.Y)
				}
			}
		}
	}
}

func TestNewlineThenJoinRestores(t *testing.T) {
	original := "split me\there"

	for c := 0; c <= len([]rune(original)); c++ {
		e := newEngine(t, 80, original)
		e.cur.X = c

		if err := e.InsertNewline(); err != nil {
			t.Fatal(err)
		}
		if e.Buffer().RowCount() != 2 {
			t.Fatalf("column %d: expected 2 rows, got %d", c, e.Buffer().RowCount())
		}
		cur := e.Cursor()
		if cur.X != 0 || cur.Y != 1 {
			t.Errorf("column %d: expected cursor (0, 1), got (%d, %d)", c, cur.X, cur.Y)
		}

		if err := e.DeleteChar(false); err != nil {
			t.Fatal(err)
		}
		if got := rows(e); got != original {
			t.Errorf("column %d: expected %q, got %q", c, original, got)
		}
		if e.cur.X != c || e.cur.Y != 0 {
			t.Errorf("column %d: expected cursor (%d, 0), got (%d, %d)", c, c, e.cur.X, e.cur.Y)
		}
	}
}

func TestInsertNewlineAtColumnZeroOpensRowAbove(t *testing.T) {
	e := newEngine(t, 80, "a", "b")
	e.cur.Y = 1

	_ = e.InsertNewline()

	if got := rows(e); got != "a||b" {
		t.Errorf("expected a||b, got %s", got)
	}
	if e.cur.Y != 2 || e.cur.X != 0 {
		t.Errorf("expected cursor (0, 2), got (%d, %d)", e.cur.X, e.cur.Y)
	}
}

func TestDeleteAtOriginIsNoop(t *testing.T) {
	e := newEngine(t, 80, "abc", "def")

	if err := e.DeleteChar(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.DeleteChar(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rows(e); got != "abc|def" {
		t.Errorf("expected unchanged rows, got %s", got)
	}
	if e.cur.X != 0 || e.cur.Y != 0 {
		t.Errorf("cursor moved to (%d, %d)", e.cur.X, e.cur.Y)
	}
	if e.Dirty() {
		t.Error("no-op delete should not mark dirty")
	}
}

func TestDeleteOnVirtualRowIsNoop(t *testing.T) {
	e := newEngine(t, 80, "abc")
	e.cur.Y = 1

	_ = e.DeleteChar(false)

	if got := rows(e); got != "abc" {
		t.Errorf("expected abc, got %s", got)
	}
	if e.Dirty() {
		t.Error("no-op delete should not mark dirty")
	}
}

func TestDeleteJoinMarksDirty(t *testing.T) {
	e := newEngine(t, 80, "ab", "cd")
	e.cur.Y = 1

	_ = e.DeleteChar(false)

	if got := rows(e); got != "abcd" {
		t.Errorf("expected abcd, got %s", got)
	}
	if e.cur.X != 2 || e.cur.Y != 0 {
		t.Errorf("expected cursor (2, 0), got (%d, %d)", e.cur.X, e.cur.Y)
	}
	if e.DirtyCount() != 1 {
		t.Errorf("expected dirty count 1, got %d", e.DirtyCount())
	}
}

func TestDeleteWord(t *testing.T) {
	tests := []struct {
		line     string
		x        int
		expected string
		cursorX  int
	}{
		{"foo bar", 7, "foo", 3},
		{"foo bar", 5, "fooar", 3},
		{"foo   ", 6, "foo  ", 5},
		{"word", 4, "", 0},
		{"a\tb", 3, "a", 1},
	}

	for _, tt := range tests {
		e := newEngine(t, 80, tt.line)
		e.cur.X = tt.x

		if err := e.DeleteChar(true); err != nil {
			t.Fatal(err)
		}

		got, _ := e.Buffer().Row(0)
		if got != tt.expected || e.cur.X != tt.cursorX {
			t.Errorf("%q at %d: expected %q@%d, got %q@%d", tt.line, tt.x, tt.expected, tt.cursorX, got, e.cur.X)
		}
		if want := uint64(tt.x - tt.cursorX); e.DirtyCount() != want {
			t.Errorf("%q at %d: expected dirty %d, got %d", tt.line, tt.x, want, e.DirtyCount())
		}
	}
}

func TestDeleteWordAfterTrailingSpace(t *testing.T) {
	// Word delete removes only the separating rune after a trailing space,
	// while a word jump skips the whitespace and lands on the word start.
	e := newEngine(t, 80, "foo bar ")
	e.cur.X = 8

	if err := e.MoveWord(Left); err != nil {
		t.Fatal(err)
	}
	if e.cur.X != 4 {
		t.Errorf("word jump: expected column 4, got %d", e.cur.X)
	}

	e.cur.X = 8
	if err := e.DeleteChar(true); err != nil {
		t.Fatal(err)
	}
	if got := rows(e); got != "foo bar" || e.cur.X != 7 {
		t.Errorf("word delete: expected %q@7, got %q@%d", "foo bar", got, e.cur.X)
	}
}

func TestDeleteWordAtRowStartJoins(t *testing.T) {
	e := newEngine(t, 80, "ab", "cd")
	e.cur.Y = 1

	_ = e.DeleteChar(true)

	if got := rows(e); got != "abcd" {
		t.Errorf("expected abcd, got %s", got)
	}
}

func TestDeleteForward(t *testing.T) {
	e := newEngine(t, 80, "ab", "cd")

	e.cur.X = 1
	_ = e.DeleteForward()
	if got := rows(e); got != "a|cd" || e.cur.X != 1 {
		t.Errorf("expected a|cd at 1, got %s at %d", got, e.cur.X)
	}

	_ = e.DeleteForward()
	if got := rows(e); got != "acd" || e.cur.X != 1 || e.cur.Y != 0 {
		t.Errorf("expected acd at (1, 0), got %s at (%d, %d)", got, e.cur.X, e.cur.Y)
	}

	e.cur.X = 3
	_ = e.DeleteForward()
	if got := rows(e); got != "acd" || e.cur.X != 3 || e.cur.Y != 0 {
		t.Errorf("delete at buffer end should be a no-op, got %s at (%d, %d)", got, e.cur.X, e.cur.Y)
	}
}

func TestWordWrapCarriesTrailingWord(t *testing.T) {
	e := newEngine(t, 10)

	typeString(t, e, "hello worl")

	if got := rows(e); got != "hello |worl" {
		t.Errorf("expected %q, got %q", "hello |worl", got)
	}
	c := e.Cursor()
	if c.X != 4 || c.Y != 1 {
		t.Errorf("expected cursor (4, 1), got (%d, %d)", c.X, c.Y)
	}
	if e.DirtyCount() != 10 {
		t.Errorf("expected one dirty increment per rune, got %d", e.DirtyCount())
	}
}

func TestWordWrapOnSpaceOpensEmptyRow(t *testing.T) {
	e := newEngine(t, 10)

	typeString(t, e, "abcdefghi ")

	if got := rows(e); got != "abcdefghi |" {
		t.Errorf("expected %q, got %q", "abcdefghi |", got)
	}
	c := e.Cursor()
	if c.X != 0 || c.Y != 1 {
		t.Errorf("expected cursor (0, 1), got (%d, %d)", c.X, c.Y)
	}
}

func TestWordWrapWithoutWhitespaceInsertsPlainly(t *testing.T) {
	e := newEngine(t, 10)

	typeString(t, e, "abcdefghijkl")

	if got := rows(e); got != "abcdefghijkl" {
		t.Errorf("expected a single row, got %q", got)
	}
	if e.cur.X != 12 {
		t.Errorf("expected cursor x 12, got %d", e.cur.X)
	}
}

func TestWordWrapDisabled(t *testing.T) {
	e := New(buffer.New(), 10, 5, WithWordWrap(false))

	typeString(t, e, "hello world")

	if got := rows(e); got != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", got)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.txt")
	e := New(buffer.NewFromLines([]string{"foo"}, buffer.WithPath(path)), 80, 20)
	e.cur.Y = 1
	_ = e.InsertChar('b')
	_ = e.InsertChar('a')
	_ = e.InsertChar('r')

	n, err := e.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if n != 7 {
		t.Errorf("expected 7 bytes, got %d", n)
	}
	if e.Dirty() {
		t.Error("save should clear dirty")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "foo\nbar" {
		t.Errorf("expected %q, got %q", "foo\nbar", data)
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	e := newEngine(t, 80, "x")
	_ = e.InsertChar('y')

	if _, err := e.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
	if !e.Dirty() {
		t.Error("failed save should keep dirty")
	}

	_, err := e.SaveAs(filepath.Join(t.TempDir(), "no", "such", "dir.txt"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("expected *IOError, got %v", err)
	}
	if !e.Dirty() {
		t.Error("failed save should keep dirty")
	}
}

func TestSaveAs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.txt")
	e := newEngine(t, 80, "x")
	_ = e.InsertChar('y')

	if _, err := e.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	if e.Buffer().Path() != path {
		t.Errorf("expected path %q, got %q", path, e.Buffer().Path())
	}
	if e.Dirty() {
		t.Error("SaveAs should clear dirty")
	}
}

func TestResizeAndScroll(t *testing.T) {
	e := newEngine(t, 80, "a\tb")
	e.Resize(200, 10)

	c := e.Cursor()
	if c.Width != 101 || c.Height != 10 {
		t.Errorf("expected 101x10, got %dx%d", c.Width, c.Height)
	}

	_ = e.Move(End)
	if err := e.Scroll(); err != nil {
		t.Fatal(err)
	}
	if e.Cursor().RenderX != 5 {
		t.Errorf("expected render x 5, got %d", e.Cursor().RenderX)
	}
}

func TestWideThresholdOption(t *testing.T) {
	e := New(buffer.New(), 200, 10, WithWideThreshold(0))
	if e.Cursor().Width != 200 {
		t.Errorf("expected width 200, got %d", e.Cursor().Width)
	}
}
