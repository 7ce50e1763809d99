// Package input translates terminal events into editor commands.
package input

import (
	"unicode"

	"github.com/dshills/textmagic/internal/engine/cursor"
	"github.com/dshills/textmagic/internal/renderer/backend"
)

// Kind identifies an editor command.
type Kind int

const (
	None Kind = iota
	Insert
	Enter
	Backspace
	Delete
	Move
	Page
	Save
	Quit
	Resize
	Escape
)

// String returns the command name.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Insert:
		return "insert"
	case Enter:
		return "enter"
	case Backspace:
		return "backspace"
	case Delete:
		return "delete"
	case Move:
		return "move"
	case Page:
		return "page"
	case Save:
		return "save"
	case Quit:
		return "quit"
	case Resize:
		return "resize"
	case Escape:
		return "escape"
	default:
		return "unknown"
	}
}

// Command is a single editor command.
type Command struct {
	Kind Kind

	Rune rune             // Insert
	Dir  cursor.Direction // Move, Page
	Word bool             // Backspace, Move: operate on a whole word

	Width, Height int // Resize
}

// Translate maps a terminal event to a command. Events with no binding
// translate to None.
func Translate(ev backend.Event) Command {
	switch ev.Type {
	case backend.EventResize:
		return Command{Kind: Resize, Width: ev.Width, Height: ev.Height}
	case backend.EventKey:
		return translateKey(ev)
	default:
		return Command{Kind: None}
	}
}

func translateKey(ev backend.Event) Command {
	wordMod := ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt)

	switch ev.Key {
	case backend.KeyRune:
		if wordMod || !unicode.IsPrint(ev.Rune) {
			return Command{Kind: None}
		}
		return Command{Kind: Insert, Rune: ev.Rune}
	case backend.KeyTab:
		return Command{Kind: Insert, Rune: '\t'}
	case backend.KeyEnter:
		return Command{Kind: Enter}
	case backend.KeyBackspace:
		return Command{Kind: Backspace, Word: wordMod}
	case backend.KeyCtrlH:
		return Command{Kind: Backspace, Word: ev.Mod.Has(backend.ModAlt)}
	case backend.KeyCtrlW:
		return Command{Kind: Backspace, Word: true}
	case backend.KeyDelete:
		return Command{Kind: Delete}
	case backend.KeyUp:
		return Command{Kind: Move, Dir: cursor.Up}
	case backend.KeyDown:
		return Command{Kind: Move, Dir: cursor.Down}
	case backend.KeyLeft:
		return Command{Kind: Move, Dir: cursor.Left, Word: wordMod}
	case backend.KeyRight:
		return Command{Kind: Move, Dir: cursor.Right, Word: wordMod}
	case backend.KeyHome:
		return Command{Kind: Move, Dir: cursor.Home}
	case backend.KeyEnd:
		return Command{Kind: Move, Dir: cursor.End}
	case backend.KeyPageUp:
		return Command{Kind: Page, Dir: cursor.Up}
	case backend.KeyPageDown:
		return Command{Kind: Page, Dir: cursor.Down}
	case backend.KeyCtrlS:
		return Command{Kind: Save}
	case backend.KeyCtrlC, backend.KeyCtrlQ:
		return Command{Kind: Quit}
	case backend.KeyEscape:
		return Command{Kind: Escape}
	default:
		return Command{Kind: None}
	}
}
