package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"

	"github.com/dshills/textmagic/internal/config"
	"github.com/dshills/textmagic/internal/engine"
	"github.com/dshills/textmagic/internal/engine/buffer"
	"github.com/dshills/textmagic/internal/renderer"
	"github.com/dshills/textmagic/internal/renderer/backend"
	"github.com/dshills/textmagic/internal/renderer/statusline"
	"github.com/dshills/textmagic/internal/watcher"
)

// HelpMessage is the status message shown at startup.
const HelpMessage = "Help: Ctrl+S = Save / Ctrl+C = Quit"

// barRows is the number of screen rows taken by the status and message bars.
const barRows = 2

// Application is the editor: it owns the buffer, the edit engine, the
// renderer and the backend, and runs the main loop.
type Application struct {
	cfg    *config.Config
	opts   Options
	logger *Logger

	buf      *buffer.Buffer
	engine   *engine.Engine
	renderer *renderer.Renderer
	backend  backend.Backend
	message  *statusline.Message
	watcher  *watcher.FileWatcher
	prompt   *prompt

	quitAttempts  int
	quitConfirmed bool
	rescuedPath   string

	running atomic.Bool
	done    chan struct{}
}

// Options configures the application.
type Options struct {
	// Path is the file to edit. Empty starts an unnamed buffer.
	Path string

	// Config holds the settings. Nil uses config.Default().
	Config *config.Config

	// Version is shown in the welcome banner.
	Version string

	// Logger receives diagnostics. Nil discards them.
	Logger *Logger

	// CrashDir is where an unnamed buffer is rescued. Defaults to ".".
	CrashDir string
}

// New creates an application and loads the file named in opts.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	if opts.CrashDir == "" {
		opts.CrashDir = "."
	}

	bufOpts := []buffer.Option{buffer.WithTabWidth(cfg.Editor.TabStop)}
	var (
		buf *buffer.Buffer
		err error
	)
	if opts.Path != "" {
		buf, err = buffer.Open(opts.Path, bufOpts...)
		if err != nil {
			return nil, NewOperationError("open", opts.Path, err)
		}
		logger.Info("opened %s (%d rows)", opts.Path, buf.RowCount())
	} else {
		buf = buffer.New(bufOpts...)
	}

	var rendererOpts []renderer.Option
	if opts.Version != "" {
		rendererOpts = append(rendererOpts, renderer.WithVersion(opts.Version))
	}

	app := &Application{
		cfg:      cfg,
		opts:     opts,
		logger:   logger.WithComponent("app"),
		buf:      buf,
		renderer: renderer.New(rendererOpts...),
		message:  statusline.NewMessage(cfg.UI.MessageTimeout.Std()),
	}
	app.message.Set(HelpMessage)
	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Buffer returns the buffer being edited.
func (app *Application) Buffer() *buffer.Buffer {
	return app.buf
}

// Dirty reports whether the buffer has unsaved changes.
func (app *Application) Dirty() bool {
	return app.engine != nil && app.engine.Dirty()
}

// Run initializes the backend and runs the main loop until the user quits,
// ctx is cancelled, or a fatal error occurs. A confirmed quit returns nil.
// On any other exit a dirty buffer is rescued by the crash guard.
func (app *Application) Run(ctx context.Context) (err error) {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	app.done = make(chan struct{})
	app.rescuedPath = ""

	if err := app.backend.Init(); err != nil {
		return NewOperationError("init", "backend", err)
	}
	defer app.backend.Shutdown()
	defer close(app.done)

	w, h := app.backend.Size()
	app.engine = engine.New(app.buf, w, viewportHeight(h),
		engine.WithWordWrap(app.cfg.Editor.WordWrap),
		engine.WithWideThreshold(app.cfg.Editor.WideThreshold),
	)
	app.logger.Debug("terminal %dx%d", w, h)

	app.startWatcher()
	defer app.stopWatcher()

	defer func() {
		if err == nil {
			return
		}
		app.logger.Error("editor stopped: %v", err)
		if path, rerr := app.rescue(); rerr != nil {
			app.logger.Error("crash guard: %v", rerr)
		} else if path != "" {
			app.logger.Warn("unsaved changes written to %s", path)
		}
	}()

	err = app.eventLoop(ctx)
	if errors.Is(err, ErrQuit) {
		app.logger.Info("quit")
		return nil
	}
	return err
}

// RescuedPath returns the file the crash guard wrote unsaved changes to
// when Run failed, or "" if nothing was written.
func (app *Application) RescuedPath() string {
	return app.rescuedPath
}

// startWatcher watches the buffer's file when watching is enabled.
func (app *Application) startWatcher() {
	if !app.cfg.Files.Watch || !app.buf.HasPath() {
		return
	}
	path, err := filepath.Abs(app.buf.Path())
	if err != nil {
		app.logger.Warn("watch %s: %v", app.buf.Path(), err)
		return
	}
	if app.watcher != nil {
		if app.watcher.Path() == path {
			return
		}
		app.stopWatcher()
	}

	w, err := watcher.New(path)
	if err != nil {
		app.logger.Warn("watch %s: %v", path, err)
		return
	}
	app.watcher = w
	app.logger.Debug("watching %s", path)
}

func (app *Application) stopWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Close(); err != nil {
		app.logger.Warn("close watcher: %v", err)
	}
	app.watcher = nil
}

func viewportHeight(h int) int {
	return max(h-barRows, 1)
}
