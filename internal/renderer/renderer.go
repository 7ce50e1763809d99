package renderer

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/textmagic/internal/engine/cursor"
	"github.com/dshills/textmagic/internal/renderer/statusline"
)

// DefaultVersion is shown in the welcome banner when none is configured.
const DefaultVersion = "0.1.0"

// Document is the read-only view of the buffer the renderer draws.
type Document interface {
	RowCount() int
	RenderedRow(i int) (string, error)
	Path() string
}

// State is everything needed to draw one frame.
// Cursor must have been scrolled for the current buffer.
type State struct {
	Doc     Document
	Cursor  cursor.Cursor
	Dirty   bool
	Message string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithVersion sets the version shown in the welcome banner.
func WithVersion(version string) Option {
	return func(r *Renderer) {
		r.version = version
	}
}

// WithWelcome enables or disables the welcome banner.
func WithWelcome(enabled bool) Option {
	return func(r *Renderer) {
		r.welcome = enabled
	}
}

// Renderer builds frames from editor state.
type Renderer struct {
	version string
	welcome bool
	status  *statusline.StatusLine
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		version: DefaultVersion,
		welcome: true,
		status:  statusline.New(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Banner returns the welcome banner text.
func (r *Renderer) Banner() string {
	return "Text Magic editor -- Version " + r.version
}

// Draw builds the frame for st.
func (r *Renderer) Draw(st State) (Frame, error) {
	var f Frame
	cur := st.Cursor

	f.HideCursor()
	f.MoveTo(0, 0)

	if err := r.drawRows(&f, st); err != nil {
		return Frame{}, err
	}
	r.drawStatusBar(&f, st)
	r.drawMessageBar(&f, st)

	x, y := cur.ScreenPosition()
	f.MoveTo(x, y)
	f.ShowCursor()
	return f, nil
}

func (r *Renderer) drawRows(f *Frame, st State) error {
	cur := st.Cursor
	count := st.Doc.RowCount()
	showBanner := r.welcome && count == 0 && st.Doc.Path() == ""

	for y := 0; y < cur.Height; y++ {
		row := y + cur.RowOffset
		switch {
		case row >= count:
			if showBanner && y == cur.Height/4 {
				f.Text(r.banner(cur.Width))
			} else {
				f.Text("~")
			}
		default:
			render, err := st.Doc.RenderedRow(row)
			if err != nil {
				return err
			}
			f.Text(visibleSlice(render, cur.ColOffset, cur.Width))
		}
		f.ClearLine()
		f.Newline()
	}
	return nil
}

// banner returns the welcome text centered in width columns.
func (r *Renderer) banner(width int) string {
	text := runewidth.Truncate(r.Banner(), width, "")
	padding := (width - runewidth.StringWidth(text)) / 2
	if padding == 0 {
		return text
	}
	return "~" + strings.Repeat(" ", padding-1) + text
}

// visibleSlice returns the runes of render in [offset, offset+width).
func visibleSlice(render string, offset, width int) string {
	runes := []rune(render)
	if offset >= len(runes) {
		return ""
	}
	end := min(len(runes), offset+width)
	return string(runes[offset:end])
}

func (r *Renderer) drawStatusBar(f *Frame, st State) {
	cur := st.Cursor
	r.status.Resize(cur.Width)
	r.status.SetFilename(st.Doc.Path())
	r.status.SetModified(st.Dirty)
	r.status.SetPosition(cur.Y+1, st.Doc.RowCount())

	f.Reverse()
	f.Text(r.status.Render())
	f.Reset()
	f.Newline()
}

func (r *Renderer) drawMessageBar(f *Frame, st State) {
	f.ClearLine()
	f.Text(statusline.MessageBar(st.Message, st.Cursor.Width))
}
