package app

import (
	"fmt"

	"github.com/dshills/textmagic/internal/input"
)

// prompt collects a line of input in the message bar. While a prompt is
// active every command except resize goes to it.
type prompt struct {
	format   string
	input    []rune
	onDone   func(string)
	onCancel func()
}

func (p *prompt) text() string {
	return fmt.Sprintf(p.format, string(p.input))
}

func (app *Application) startPrompt(format string, onDone func(string), onCancel func()) {
	app.prompt = &prompt{
		format:   format,
		onDone:   onDone,
		onCancel: onCancel,
	}
}

// handlePrompt edits the prompt input. Enter accepts non-empty input and
// Escape cancels.
func (app *Application) handlePrompt(cmd input.Command) error {
	p := app.prompt
	switch cmd.Kind {
	case input.Enter:
		if len(p.input) == 0 {
			return nil
		}
		app.prompt = nil
		app.message.Clear()
		p.onDone(string(p.input))
	case input.Escape:
		app.prompt = nil
		app.message.Clear()
		p.onCancel()
	case input.Backspace, input.Delete:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case input.Insert:
		p.input = append(p.input, cmd.Rune)
	}
	return nil
}
