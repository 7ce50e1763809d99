// Package watcher notices when the file being edited is changed on disk by
// another program.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrPathNotExist is returned when the directory of the file doesn't exist.
var ErrPathNotExist = errors.New("path does not exist")

// Op represents the type of file system operation.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	var parts []string
	if op.Has(OpCreate) {
		parts = append(parts, "CREATE")
	}
	if op.Has(OpWrite) {
		parts = append(parts, "WRITE")
	}
	if op.Has(OpRemove) {
		parts = append(parts, "REMOVE")
	}
	if op.Has(OpRename) {
		parts = append(parts, "RENAME")
	}
	if op.Has(OpChmod) {
		parts = append(parts, "CHMOD")
	}
	if len(parts) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(parts, "|")
}

// Has reports whether op includes o.
func (op Op) Has(o Op) bool {
	return op&o != 0
}

// Notice reports that the watched file changed.
type Notice struct {
	// Path is the watched file.
	Path string
	// Op combines every operation seen during the debounce window.
	Op Op
	// Time is when the notice was emitted.
	Time time.Time
}

// Default timings.
const (
	DefaultDebounce       = 100 * time.Millisecond
	DefaultSuppressWindow = 500 * time.Millisecond
)

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets how long rapid changes are coalesced into one notice.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithSuppressWindow sets how long after ExpectWrite changes are ignored.
func WithSuppressWindow(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d > 0 {
			w.suppressWindow = d
		}
	}
}

// FileWatcher watches a single file. The parent directory is watched so the
// file may be created, replaced or removed while being watched.
type FileWatcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	path    string

	debounce       time.Duration
	suppressWindow time.Duration
	suppressUntil  time.Time

	notices chan Notice
	errors  chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New starts watching path.
func New(path string, opts ...Option) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotExist, dir)
		}
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		watcher:        fsw,
		path:           absPath,
		debounce:       DefaultDebounce,
		suppressWindow: DefaultSuppressWindow,
		notices:        make(chan Notice, 16),
		errors:         make(chan error, 16),
		closeCh:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// Notices returns the notice channel. It is closed by Close.
func (w *FileWatcher) Notices() <-chan Notice {
	return w.notices
}

// Errors returns the channel of fsnotify errors, such as an event queue
// overflow. It is closed by Close.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// ExpectWrite ignores changes for the suppress window. Call it right before
// the editor writes the file itself.
func (w *FileWatcher) ExpectWrite() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.suppressUntil = time.Now().Add(w.suppressWindow)
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	// Wait for processLoop to finish
	w.closedWg.Wait()

	close(w.notices)
	close(w.errors)

	return w.watcher.Close()
}

// processLoop filters events for the watched file and debounces them.
func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	var (
		pending Op
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			op := w.filter(ev)
			if op == 0 {
				continue
			}
			pending |= op
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if pending != 0 {
				w.send(Notice{Path: w.path, Op: pending, Time: time.Now()})
				pending = 0
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// Channel full, drop error
			}
		}
	}
}

// filter returns the operation of ev if it concerns the watched file and
// is not suppressed, or 0.
func (w *FileWatcher) filter(ev fsnotify.Event) Op {
	if filepath.Clean(ev.Name) != w.path {
		return 0
	}

	w.mu.Lock()
	suppressed := time.Now().Before(w.suppressUntil)
	w.mu.Unlock()
	if suppressed {
		return 0
	}

	op := convertOp(ev.Op)
	if op == OpChmod {
		// Permission or timestamp change only; the content is untouched.
		return 0
	}
	return op
}

func (w *FileWatcher) send(n Notice) {
	select {
	case w.notices <- n:
	default:
		// Channel full, drop notice
	}
}

// convertOp converts fsnotify.Op to watcher.Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
