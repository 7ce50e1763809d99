package buffer

import "github.com/dshills/textmagic/internal/engine/tabstop"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithTabWidth sets the tab stop used for rendering.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabs = tabstop.New(width)
		}
	}
}

// WithPath associates the buffer with a file path.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}
