package app

import (
	"path/filepath"
	"runtime/debug"
	"strings"
)

// CrashPath returns where the crash guard writes the buffer: the buffer's
// file with its extension replaced by ".tmp", or the configured crash name
// in the crash directory for an unnamed buffer.
func (app *Application) CrashPath() string {
	if path := app.buf.Path(); path != "" {
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".tmp"
	}
	return filepath.Join(app.opts.CrashDir, app.cfg.Files.CrashName+".tmp")
}

// rescue writes a dirty buffer to CrashPath. It does nothing after a
// confirmed quit. It returns the path written, or "", and records it for
// RescuedPath.
func (app *Application) rescue() (string, error) {
	if app.quitConfirmed || !app.Dirty() {
		return "", nil
	}
	path := app.CrashPath()
	if _, err := app.buf.WriteFile(path); err != nil {
		return "", err
	}
	app.rescuedPath = path
	return path, nil
}

// Guard rescues unsaved changes when the editor panics, then re-panics.
// Defer it right after creating the application:
//
//	defer application.Guard()
func (app *Application) Guard() {
	r := recover()
	if r == nil {
		return
	}

	perr := &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
	app.logger.Error("%v", perr)
	if path, err := app.rescue(); err != nil {
		app.logger.Error("crash guard: %v", err)
	} else if path != "" {
		app.logger.Warn("unsaved changes written to %s", path)
	}
	panic(r)
}
