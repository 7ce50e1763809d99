// Package tabstop implements the tab expansion rule shared by the line store
// and the cursor model.
//
// A tab advances the rendered column to the next multiple of the tab width,
// always emitting at least one space. Every other rune occupies exactly one
// rendered column.
package tabstop

// DefaultWidth is the tab stop used when none is configured.
const DefaultWidth = 4

// Expander provides tab expansion utilities.
type Expander struct {
	width int
}

// New creates an expander with the given tab width.
// Widths below one fall back to DefaultWidth.
func New(width int) *Expander {
	if width < 1 {
		width = DefaultWidth
	}
	return &Expander{width: width}
}

// Default returns an expander with the default tab width of 4.
func Default() *Expander {
	return New(DefaultWidth)
}

// Width returns the tab width.
func (e *Expander) Width() int {
	return e.width
}

// NextStop returns the next tab stop column after col.
func (e *Expander) NextStop(col int) int {
	return col + e.width - (col % e.width)
}

// Advance returns the rendered column reached after placing r at col.
func (e *Expander) Advance(col int, r rune) int {
	if r == '\t' {
		return e.NextStop(col)
	}
	return col + 1
}

// Expand returns content with tabs replaced by spaces.
func (e *Expander) Expand(content []rune) []rune {
	out := make([]rune, 0, len(content)+e.countTabs(content)*(e.width-1))
	for _, r := range content {
		if r != '\t' {
			out = append(out, r)
			continue
		}
		next := e.NextStop(len(out))
		for len(out) < next {
			out = append(out, ' ')
		}
	}
	return out
}

// Column returns the rendered width of content[:x].
// x is clamped to the length of content.
func (e *Expander) Column(content []rune, x int) int {
	if x > len(content) {
		x = len(content)
	}
	col := 0
	for _, r := range content[:x] {
		col = e.Advance(col, r)
	}
	return col
}

func (e *Expander) countTabs(content []rune) int {
	n := 0
	for _, r := range content {
		if r == '\t' {
			n++
		}
	}
	return n
}
