package engine

import "github.com/dshills/textmagic/internal/engine/cursor"

// Option configures an Engine during creation.
type Option func(*Engine)

// WithWordWrap enables or disables word-wrap on insert.
func WithWordWrap(enabled bool) Option {
	return func(e *Engine) {
		e.wordWrap = enabled
	}
}

// WithWideThreshold sets the terminal width above which the viewport is
// narrowed to half the terminal. Zero disables the narrowing.
func WithWideThreshold(width int) Option {
	return func(e *Engine) {
		if width >= 0 {
			e.wideThreshold = width
		}
	}
}

// defaultWideThreshold mirrors the cursor package default.
const defaultWideThreshold = cursor.DefaultWideThreshold
