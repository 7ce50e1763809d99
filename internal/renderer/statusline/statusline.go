// Package statusline provides the status bar and message bar text shown
// below the editing area.
package statusline

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// NoName is shown in place of a file name for buffers that have none.
const NoName = "[No Name]"

// StatusLine composes the reverse-video status bar.
type StatusLine struct {
	filename   string // base name of the file, empty for a new buffer
	modified   bool   // buffer has unsaved changes
	line       int    // current line (1-indexed for display)
	totalLines int    // total lines in buffer
	width      int    // columns available
}

// New creates a status line for the given width.
func New(width int) *StatusLine {
	return &StatusLine{width: width}
}

// SetFilename updates the displayed file from a full path.
func (s *StatusLine) SetFilename(path string) {
	if path == "" {
		s.filename = ""
		return
	}
	s.filename = filepath.Base(path)
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetPosition updates the cursor line (1-indexed) and the line count.
func (s *StatusLine) SetPosition(line, total int) {
	s.line = line
	s.totalLines = total
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Render returns the status bar text, exactly Width display columns wide.
// The file information is left-aligned and clamped to the width; the
// "line/total" position is right-aligned when it still fits.
func (s *StatusLine) Render() string {
	if s.width <= 0 {
		return ""
	}

	name := s.filename
	if name == "" {
		name = NoName
	}
	marker := ""
	if s.modified {
		marker = "(modified)"
	}
	info := name + " " + marker + " -- " + strconv.Itoa(s.totalLines) + " lines"
	info = runewidth.Truncate(info, s.width, "")

	var sb strings.Builder
	sb.WriteString(info)

	position := strconv.Itoa(s.line) + "/" + strconv.Itoa(s.totalLines)
	used := runewidth.StringWidth(info)
	remaining := s.width - used
	if remaining >= len(position) {
		sb.WriteString(strings.Repeat(" ", remaining-len(position)))
		sb.WriteString(position)
	} else {
		sb.WriteString(strings.Repeat(" ", remaining))
	}
	return sb.String()
}

// MessageBar clamps msg to width display columns.
func MessageBar(msg string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(msg, width, "")
}
