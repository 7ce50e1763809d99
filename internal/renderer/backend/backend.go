// Package backend provides the terminal backends that display renderer
// frames and deliver input events.
package backend

import (
	"sync"

	"github.com/dshills/textmagic/internal/renderer"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventClosed // the backend was shut down; no more events follow
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlH
	KeyCtrlQ
	KeyCtrlS
	KeyCtrlW
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// KeyEvent builds a key event.
func KeyEvent(key Key, mod ModMask) Event {
	return Event{Type: EventKey, Key: key, Mod: mod}
}

// RuneEvent builds a key event for a printable rune.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// ResizeEvent builds a resize event.
func ResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// A PollEvent blocked at that time returns an EventClosed event.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)

	// Draw displays a frame. Each frame reaches the terminal in one flush.
	Draw(frame renderer.Frame) error
}

// NullBackend is a scripted backend for testing. Events are queued with
// PostEvent and every drawn frame is recorded.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	frames        []renderer.Frame
	drawErr       error
	events        chan Event
	done          chan struct{}
	closeOnce     sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
		done:   make(chan struct{}),
	}
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.width, b.height
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return Event{Type: EventClosed}
	}
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *NullBackend) Draw(frame renderer.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.drawErr != nil {
		return b.drawErr
	}
	b.frames = append(b.frames, frame)
	return nil
}

// PostString queues one rune event per rune of s.
func (b *NullBackend) PostString(s string) {
	for _, r := range s {
		b.PostEvent(RuneEvent(r))
	}
}

// Resize simulates a terminal resize and queues the resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.mu.Unlock()

	b.PostEvent(ResizeEvent(width, height))
}

// FailDraw makes every following Draw return err.
func (b *NullBackend) FailDraw(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.drawErr = err
}

// Frames returns the frames drawn so far.
func (b *NullBackend) Frames() []renderer.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]renderer.Frame, len(b.frames))
	copy(out, b.frames)
	return out
}

// LastFrame returns the most recent frame.
func (b *NullBackend) LastFrame() (renderer.Frame, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.frames) == 0 {
		return renderer.Frame{}, false
	}
	return b.frames[len(b.frames)-1], true
}
