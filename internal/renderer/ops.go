package renderer

import "strings"

// OpKind identifies a drawing operation.
type OpKind int

const (
	OpHideCursor OpKind = iota
	OpShowCursor
	OpMoveTo    // position the cursor at X, Y (zero-based)
	OpText      // write Text at the current position
	OpClearLine // erase from the cursor to the end of the line
	OpNewline   // move to the start of the next line
	OpReverse   // switch to reverse video
	OpReset     // reset all attributes
)

// String returns the operation name.
func (k OpKind) String() string {
	switch k {
	case OpHideCursor:
		return "hide-cursor"
	case OpShowCursor:
		return "show-cursor"
	case OpMoveTo:
		return "move-to"
	case OpText:
		return "text"
	case OpClearLine:
		return "clear-line"
	case OpNewline:
		return "newline"
	case OpReverse:
		return "reverse"
	case OpReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Op is a single drawing operation.
type Op struct {
	Kind OpKind
	X, Y int
	Text string
}

// Frame is an ordered list of drawing operations for one redraw.
type Frame struct {
	Ops []Op
}

func (f *Frame) add(op Op) {
	f.Ops = append(f.Ops, op)
}

// HideCursor appends a hide-cursor operation.
func (f *Frame) HideCursor() { f.add(Op{Kind: OpHideCursor}) }

// ShowCursor appends a show-cursor operation.
func (f *Frame) ShowCursor() { f.add(Op{Kind: OpShowCursor}) }

// MoveTo appends a cursor positioning operation.
func (f *Frame) MoveTo(x, y int) { f.add(Op{Kind: OpMoveTo, X: x, Y: y}) }

// Text appends text output. Empty text is skipped.
func (f *Frame) Text(s string) {
	if s == "" {
		return
	}
	f.add(Op{Kind: OpText, Text: s})
}

// ClearLine appends an erase-to-end-of-line operation.
func (f *Frame) ClearLine() { f.add(Op{Kind: OpClearLine}) }

// Newline appends a line break.
func (f *Frame) Newline() { f.add(Op{Kind: OpNewline}) }

// Reverse appends a switch to reverse video.
func (f *Frame) Reverse() { f.add(Op{Kind: OpReverse}) }

// Reset appends an attribute reset.
func (f *Frame) Reset() { f.add(Op{Kind: OpReset}) }

// Lines returns the text of the frame split into screen lines, ignoring
// attributes and cursor movement. Used for inspection and tests.
func (f Frame) Lines() []string {
	var lines []string
	var sb strings.Builder
	for _, op := range f.Ops {
		switch op.Kind {
		case OpText:
			sb.WriteString(op.Text)
		case OpNewline:
			lines = append(lines, sb.String())
			sb.Reset()
		}
	}
	return append(lines, sb.String())
}

// CursorPosition returns the position of the last MoveTo in the frame.
func (f Frame) CursorPosition() (x, y int, ok bool) {
	for i := len(f.Ops) - 1; i >= 0; i-- {
		if f.Ops[i].Kind == OpMoveTo {
			return f.Ops[i].X, f.Ops[i].Y, true
		}
	}
	return 0, 0, false
}
