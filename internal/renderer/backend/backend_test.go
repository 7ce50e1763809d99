package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/textmagic/internal/renderer"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.PostString("hé")
	b.PostEvent(KeyEvent(KeyEnter, ModNone))

	expected := []Event{RuneEvent('h'), RuneEvent('é'), KeyEvent(KeyEnter, ModNone)}
	for i, want := range expected {
		if got := b.PollEvent(); got != want {
			t.Errorf("event %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Resize(120, 40)

	w, h := b.Size()
	if w != 120 || h != 40 {
		t.Errorf("expected size (120, 40), got (%d, %d)", w, h)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 120 || ev.Height != 40 {
		t.Errorf("expected resize event, got %+v", ev)
	}
}

func TestNullBackendShutdownUnblocksPoll(t *testing.T) {
	b := NewNullBackend(80, 24)
	got := make(chan Event, 1)
	go func() { got <- b.PollEvent() }()

	b.Shutdown()
	b.Shutdown() // idempotent

	select {
	case ev := <-got:
		if ev.Type != EventClosed {
			t.Errorf("expected EventClosed, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("PollEvent did not return after Shutdown")
	}
}

func TestNullBackendRecordsFrames(t *testing.T) {
	b := NewNullBackend(80, 24)
	if _, ok := b.LastFrame(); ok {
		t.Error("expected no frame before drawing")
	}

	var f renderer.Frame
	f.Text("hello")
	if err := b.Draw(f); err != nil {
		t.Fatal(err)
	}

	if n := len(b.Frames()); n != 1 {
		t.Fatalf("expected 1 frame, got %d", n)
	}
	last, ok := b.LastFrame()
	if !ok || last.Lines()[0] != "hello" {
		t.Errorf("unexpected last frame %+v", last)
	}

	errBoom := errors.New("boom")
	b.FailDraw(errBoom)
	if err := b.Draw(f); !errors.Is(err, errBoom) {
		t.Errorf("expected draw error, got %v", err)
	}
}

func TestModMaskHas(t *testing.T) {
	m := ModCtrl | ModAlt
	if !m.Has(ModCtrl) || !m.Has(ModAlt) {
		t.Error("expected ctrl and alt")
	}
	if m.Has(ModShift) {
		t.Error("unexpected shift")
	}
}
