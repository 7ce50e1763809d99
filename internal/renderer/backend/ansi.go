package backend

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/dshills/textmagic/internal/renderer"
)

const (
	seqClearScreen = "\x1b[2J"
	seqHome        = "\x1b[H"
)

// ANSI implements Backend by putting the terminal into raw mode and writing
// encoded frames directly to the output.
type ANSI struct {
	in  *os.File
	out *os.File

	mu        sync.Mutex
	state     *term.State
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
	stopWatch func()
}

// NewANSI creates a raw-mode backend reading keys from in and drawing to out.
func NewANSI(in, out *os.File) *ANSI {
	return &ANSI{
		in:     in,
		out:    out,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

func (a *ANSI) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	state, err := term.MakeRaw(int(a.in.Fd()))
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	a.state = state

	go a.readLoop(NewKeyDecoder(a.in))
	a.stopWatch = watchResize(a.out, a.PostEvent)
	return nil
}

func (a *ANSI) Shutdown() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		close(a.done)
		if a.stopWatch != nil {
			a.stopWatch()
		}
		_, _ = io.WriteString(a.out, seqClearScreen+seqHome)
		if a.state != nil {
			_ = term.Restore(int(a.in.Fd()), a.state)
			a.state = nil
		}
	})
}

func (a *ANSI) Size() (int, int) {
	w, h, err := term.GetSize(int(a.out.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

func (a *ANSI) PollEvent() Event {
	select {
	case ev := <-a.events:
		return ev
	case <-a.done:
		return Event{Type: EventClosed}
	}
}

func (a *ANSI) PostEvent(event Event) {
	select {
	case a.events <- event:
	case <-a.done:
	default:
	}
}

func (a *ANSI) Draw(frame renderer.Frame) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return renderer.Flush(a.out, frame)
}

// readLoop forwards decoded keys until the input fails or the backend closes.
func (a *ANSI) readLoop(dec *KeyDecoder) {
	for {
		ev, err := dec.Next()
		if err != nil {
			return
		}
		if ev.Type == EventNone {
			continue
		}
		select {
		case a.events <- ev:
		case <-a.done:
			return
		}
	}
}

// KeyDecoder turns raw terminal input bytes into key events.
type KeyDecoder struct {
	r *bufio.Reader
}

// NewKeyDecoder creates a decoder reading from r.
func NewKeyDecoder(r io.Reader) *KeyDecoder {
	return &KeyDecoder{r: bufio.NewReader(r)}
}

// Next blocks until a full key has been read.
// Unrecognized sequences are returned as EventNone.
func (d *KeyDecoder) Next() (Event, error) {
	r, _, err := d.r.ReadRune()
	if err != nil {
		return Event{}, err
	}

	switch r {
	case 0x1b:
		return d.escape()
	case '\r', '\n':
		return KeyEvent(KeyEnter, ModNone), nil
	case '\t':
		return KeyEvent(KeyTab, ModNone), nil
	case 0x7f:
		return KeyEvent(KeyBackspace, ModNone), nil
	case 0x08:
		return KeyEvent(KeyCtrlH, ModCtrl), nil
	case 0x03:
		return KeyEvent(KeyCtrlC, ModCtrl), nil
	case 0x11:
		return KeyEvent(KeyCtrlQ, ModCtrl), nil
	case 0x13:
		return KeyEvent(KeyCtrlS, ModCtrl), nil
	case 0x17:
		return KeyEvent(KeyCtrlW, ModCtrl), nil
	}
	if r < 0x20 || r == 0x9b {
		return Event{Type: EventNone}, nil
	}
	return RuneEvent(r), nil
}

// escape decodes the rest of an escape sequence. A lone ESC with nothing
// buffered after it is the Escape key.
func (d *KeyDecoder) escape() (Event, error) {
	if d.r.Buffered() == 0 {
		return KeyEvent(KeyEscape, ModNone), nil
	}
	b, err := d.r.ReadByte()
	if err != nil {
		return KeyEvent(KeyEscape, ModNone), nil
	}

	switch b {
	case '[':
		return d.csi()
	case 'O':
		c, err := d.r.ReadByte()
		if err != nil {
			return KeyEvent(KeyEscape, ModNone), nil
		}
		return finalKey(c, ModNone), nil
	case 0x7f:
		return KeyEvent(KeyBackspace, ModAlt), nil
	case 'b':
		return KeyEvent(KeyLeft, ModAlt), nil
	case 'f':
		return KeyEvent(KeyRight, ModAlt), nil
	}
	return Event{Type: EventNone}, nil
}

// csi decodes a control sequence after "ESC [".
func (d *KeyDecoder) csi() (Event, error) {
	var params []int
	n, has := 0, false
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			return Event{Type: EventNone}, nil
		}
		switch {
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			has = true
		case c == ';':
			params = append(params, n)
			n, has = 0, false
		case c == '~':
			if has {
				params = append(params, n)
			}
			if len(params) == 0 {
				return Event{Type: EventNone}, nil
			}
			return tildeKey(params[0], modifier(params)), nil
		default:
			if has {
				params = append(params, n)
			}
			return finalKey(c, modifier(params)), nil
		}
	}
}

// modifier decodes the xterm modifier parameter, e.g. the 5 in "ESC [1;5C".
func modifier(params []int) ModMask {
	if len(params) < 2 {
		return ModNone
	}
	m := params[1] - 1
	var mod ModMask
	if m&1 != 0 {
		mod |= ModShift
	}
	if m&2 != 0 {
		mod |= ModAlt
	}
	if m&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

func finalKey(c byte, mod ModMask) Event {
	switch c {
	case 'A':
		return KeyEvent(KeyUp, mod)
	case 'B':
		return KeyEvent(KeyDown, mod)
	case 'C':
		return KeyEvent(KeyRight, mod)
	case 'D':
		return KeyEvent(KeyLeft, mod)
	case 'H':
		return KeyEvent(KeyHome, mod)
	case 'F':
		return KeyEvent(KeyEnd, mod)
	}
	return Event{Type: EventNone}
}

func tildeKey(code int, mod ModMask) Event {
	switch code {
	case 1, 7:
		return KeyEvent(KeyHome, mod)
	case 3:
		return KeyEvent(KeyDelete, mod)
	case 4, 8:
		return KeyEvent(KeyEnd, mod)
	case 5:
		return KeyEvent(KeyPageUp, mod)
	case 6:
		return KeyEvent(KeyPageDown, mod)
	}
	return Event{Type: EventNone}
}

// ErrNotTerminal is returned when the ANSI backend is used without a tty.
var ErrNotTerminal = errors.New("not a terminal")

// CheckTerminal reports ErrNotTerminal when f is not a terminal.
func CheckTerminal(f *os.File) error {
	if !term.IsTerminal(int(f.Fd())) {
		return ErrNotTerminal
	}
	return nil
}
