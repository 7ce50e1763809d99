package statusline

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestRenderNoName(t *testing.T) {
	s := New(40)
	s.SetPosition(1, 0)

	got := s.Render()
	if !strings.HasPrefix(got, "[No Name]  -- 0 lines") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.HasSuffix(got, "1/0") {
		t.Errorf("expected position suffix, got %q", got)
	}
	if len(got) != 40 {
		t.Errorf("expected width 40, got %d", len(got))
	}
}

func TestRenderModifiedFile(t *testing.T) {
	s := New(50)
	s.SetFilename("/tmp/project/notes.txt")
	s.SetModified(true)
	s.SetPosition(3, 12)

	got := s.Render()
	want := "notes.txt (modified) -- 12 lines"
	if !strings.HasPrefix(got, want) {
		t.Errorf("expected prefix %q, got %q", want, got)
	}
	if !strings.HasSuffix(got, "3/12") {
		t.Errorf("expected suffix 3/12, got %q", got)
	}
	if len(got) != 50 {
		t.Errorf("expected width 50, got %d", len(got))
	}
}

func TestRenderNarrowDropsPosition(t *testing.T) {
	s := New(10)
	s.SetPosition(1, 1)

	got := s.Render()
	if got != "[No Name] " {
		t.Errorf("expected truncated info, got %q", got)
	}
}

func TestRenderPositionDoesNotFitPadsWithSpaces(t *testing.T) {
	s := New(26)
	s.SetPosition(100, 200)

	// info is 23 columns, leaving 3 for a 7 column position
	got := s.Render()
	want := "[No Name]  -- 200 lines   "
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderWideRunes(t *testing.T) {
	s := New(30)
	s.SetFilename("日本語.txt")
	s.SetPosition(1, 1)

	got := s.Render()
	if w := runewidth.StringWidth(got); w != 30 {
		t.Errorf("expected display width 30, got %d (%q)", w, got)
	}
}

func TestMessageBar(t *testing.T) {
	if got := MessageBar("hello world", 5); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
	if got := MessageBar("hi", 5); got != "hi" {
		t.Errorf("expected %q, got %q", "hi", got)
	}
	if got := MessageBar("hi", 0); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestMessageExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMessage(5 * time.Second)
	m.SetClock(func() time.Time { return now })

	if _, ok := m.Text(); ok {
		t.Error("new message should be empty")
	}

	m.Set("saved")
	now = now.Add(5 * time.Second)
	if text, ok := m.Text(); !ok || text != "saved" {
		t.Errorf("expected message at exactly the timeout, got %q %v", text, ok)
	}

	now = now.Add(time.Millisecond)
	if _, ok := m.Text(); ok {
		t.Error("message should have expired")
	}

	m.Set("again")
	if text, ok := m.Text(); !ok || text != "again" {
		t.Errorf("expected new message, got %q %v", text, ok)
	}
}

func TestMessageDefaultTimeout(t *testing.T) {
	m := NewMessage(0)
	if m.timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %v", m.timeout)
	}
}
