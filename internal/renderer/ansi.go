package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned by Flush when a frame would emit invalid UTF-8.
var ErrInvalidUTF8 = errors.New("frame contains invalid UTF-8")

// VT100 control sequences.
const (
	seqHideCursor = "\x1b[?25l"
	seqShowCursor = "\x1b[?25h"
	seqClearLine  = "\x1b[K"
	seqNewline    = "\r\n"
	seqReverse    = "\x1b[7m"
	seqReset      = "\x1b[m"
)

// Encode returns the ANSI byte stream for the frame.
func Encode(f Frame) []byte {
	var sb bytes.Buffer
	for _, op := range f.Ops {
		switch op.Kind {
		case OpHideCursor:
			sb.WriteString(seqHideCursor)
		case OpShowCursor:
			sb.WriteString(seqShowCursor)
		case OpMoveTo:
			sb.WriteString("\x1b[")
			sb.WriteString(strconv.Itoa(op.Y + 1))
			sb.WriteByte(';')
			sb.WriteString(strconv.Itoa(op.X + 1))
			sb.WriteByte('H')
		case OpText:
			sb.WriteString(op.Text)
		case OpClearLine:
			sb.WriteString(seqClearLine)
		case OpNewline:
			sb.WriteString(seqNewline)
		case OpReverse:
			sb.WriteString(seqReverse)
		case OpReset:
			sb.WriteString(seqReset)
		}
	}
	return sb.Bytes()
}

// Flush encodes the frame and writes it to w in a single call.
func Flush(w io.Writer, f Frame) error {
	out := Encode(f)
	if !utf8.Valid(out) {
		return ErrInvalidUTF8
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}
