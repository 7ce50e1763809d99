package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dshills/textmagic/internal/input"
	"github.com/dshills/textmagic/internal/renderer"
	"github.com/dshills/textmagic/internal/renderer/backend"
	"github.com/dshills/textmagic/internal/watcher"
)

// quitWarning is shown while quitting with unsaved changes needs more
// confirmations.
const quitWarning = "WARNING! File has unsaved changes. " +
	"Press Ctrl+C %d more times to quit without saving or Ctrl+S to save first."

// eventLoop redraws, then waits for the next input event, idle tick, file
// notice or cancellation, and applies it in full before redrawing again.
func (app *Application) eventLoop(ctx context.Context) error {
	events := make(chan backend.Event)
	go app.pollEvents(events)

	idle := time.NewTicker(app.cfg.UI.IdleInterval.Std())
	defer idle.Stop()

	for {
		if err := app.refresh(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return ErrBackendClosed
			}
			if err := app.handle(input.Translate(ev)); err != nil {
				return err
			}

		case <-idle.C:
			// Redraw so an expired status message disappears.

		case n, ok := <-app.notices():
			if !ok {
				app.watcher = nil
				continue
			}
			app.handleNotice(n)

		case err, ok := <-app.watchErrors():
			if !ok {
				app.watcher = nil
				continue
			}
			app.handleWatchError(err)
		}
	}
}

// pollEvents forwards backend events until the backend closes or the loop
// exits.
func (app *Application) pollEvents(events chan<- backend.Event) {
	done := app.done
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventClosed {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// notices returns the watcher channel, or nil when nothing is watched.
func (app *Application) notices() <-chan watcher.Notice {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Notices()
}

// watchErrors returns the watcher error channel, or nil when nothing is
// watched.
func (app *Application) watchErrors() <-chan error {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Errors()
}

// refresh scrolls the viewport to the cursor and draws a frame.
func (app *Application) refresh() error {
	if err := app.engine.Scroll(); err != nil {
		return NewOperationError("scroll", "", err)
	}

	msg, _ := app.message.Text()
	if app.prompt != nil {
		msg = app.prompt.text()
	}

	frame, err := app.renderer.Draw(renderer.State{
		Doc:     app.buf,
		Cursor:  app.engine.Cursor(),
		Dirty:   app.engine.Dirty(),
		Message: msg,
	})
	if err != nil {
		return NewOperationError("render", "", err)
	}
	if err := app.backend.Draw(frame); err != nil {
		return NewOperationError("draw", "", err)
	}
	return nil
}

// handle applies one command.
func (app *Application) handle(cmd input.Command) error {
	if cmd.Kind == input.Resize {
		app.engine.Resize(cmd.Width, viewportHeight(cmd.Height))
		return nil
	}
	if app.prompt != nil {
		return app.handlePrompt(cmd)
	}

	var err error
	switch cmd.Kind {
	case input.Quit:
		return app.quit()
	case input.Save:
		app.save()
	case input.Insert:
		err = app.engine.InsertChar(cmd.Rune)
	case input.Enter:
		err = app.engine.InsertNewline()
	case input.Backspace:
		err = app.engine.DeleteChar(cmd.Word)
	case input.Delete:
		err = app.engine.DeleteForward()
	case input.Move:
		if cmd.Word {
			err = app.engine.MoveWord(cmd.Dir)
		} else {
			err = app.engine.Move(cmd.Dir)
		}
	case input.Page:
		err = app.engine.MovePage(cmd.Dir)
	}
	if err != nil {
		return NewOperationError("edit", cmd.Kind.String(), err)
	}
	return nil
}

// quit returns ErrQuit unless the buffer is dirty and the user still has
// to confirm.
func (app *Application) quit() error {
	if app.engine.Dirty() && app.quitAttempts < app.cfg.UI.QuitAttempts {
		app.message.Set(fmt.Sprintf(quitWarning, app.cfg.UI.QuitAttempts-app.quitAttempts))
		app.quitAttempts++
		return nil
	}
	app.quitConfirmed = true
	return ErrQuit
}

// save writes the buffer, asking for a file name first if it has none.
func (app *Application) save() {
	if app.buf.HasPath() {
		app.write("")
		return
	}
	app.startPrompt("Save as: %s", func(path string) {
		app.write(path)
	}, func() {
		app.message.Set("Save aborted!")
	})
}

// write saves to path, or to the buffer's own file when path is empty.
// Failures are reported in the message bar and leave the buffer dirty.
func (app *Application) write(path string) {
	if app.watcher != nil {
		app.watcher.ExpectWrite()
	}

	var (
		n   int
		err error
	)
	if path == "" {
		n, err = app.engine.Save()
	} else {
		n, err = app.engine.SaveAs(path)
	}
	if err != nil {
		app.logger.Warn("save failed: %v", err)
		app.message.Set(fmt.Sprintf("Can't save! %v", err))
		return
	}

	app.logger.Info("wrote %d bytes to %s", n, app.buf.Path())
	app.message.Set(fmt.Sprintf("%d bytes written to disk", n))
	app.startWatcher()
}

// handleWatchError logs a watcher failure. Changes may have been missed, so
// the user is told the file is no longer tracked reliably.
func (app *Application) handleWatchError(err error) {
	app.logger.Warn("watch %s: %v", app.buf.Path(), err)
	app.message.Set(fmt.Sprintf("Can't track changes to %s on disk", filepath.Base(app.buf.Path())))
}

// handleNotice reports an outside change to the edited file.
func (app *Application) handleNotice(n watcher.Notice) {
	app.logger.Info("file changed on disk: %s %s", n.Path, n.Op)
	name := filepath.Base(n.Path)
	if n.Op.Has(watcher.OpRemove) || n.Op.Has(watcher.OpRename) {
		app.message.Set(fmt.Sprintf("%s was removed on disk", name))
		return
	}
	app.message.Set(fmt.Sprintf("%s changed on disk", name))
}
