package screen

import (
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Renderer maintains the current and previously painted buffers and
// repaints only what changed. A full repaint happens on the first frame
// and after every resize; the single-row vsync path exists for the
// animated separator marker, which updates far more often than anything
// else and must not pay for a whole diff pass.
type Renderer struct {
	out       *termenv.Output
	current   *Buffer
	previous  *Buffer
	width     int
	forceFull bool
}

// NewRenderer returns a renderer writing to w, sized for the given
// terminal dimensions.
func NewRenderer(w io.Writer, width, height int) *Renderer {
	return &Renderer{
		out:       termenv.NewOutput(w),
		current:   NewBuffer(height),
		previous:  NewBuffer(height),
		width:     width,
		forceFull: true,
	}
}

// Current returns the buffer being built for this frame.
func (r *Renderer) Current() *Buffer {
	return r.current
}

// Width returns the terminal width rows are clamped to.
func (r *Renderer) Width() int {
	return r.width
}

// Resize adjusts the buffers to the new terminal size. The next Flush is
// an unconditional full repaint regardless of prior diff state.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.current.Resize(height)
	r.previous.Resize(height)
	r.forceFull = true
	r.out.ClearScreen()
}

// Flush paints the current buffer. In steady state only rows differing
// from the previous frame are written; after a resize or on the first
// frame every row is written. Returns the number of rows painted.
func (r *Renderer) Flush() int {
	painted := 0
	for i := 0; i < r.current.Height(); i++ {
		line := r.current.Row(i)
		if !r.forceFull && line == r.previous.Row(i) {
			continue
		}
		r.paintRow(i, line)
		painted++
	}
	r.previous.copyFrom(r.current)
	r.forceFull = false
	return painted
}

// FlushRow is the vsync path: it writes one row into the current buffer
// and repaints only that row, bypassing the full diff.
func (r *Renderer) FlushRow(row int, line string) {
	if row < 0 || row >= r.current.Height() {
		return
	}
	r.current.SetRow(row, line)
	if line == r.previous.Row(row) {
		return
	}
	r.paintRow(row, line)
	r.previous.SetRow(row, line)
}

func (r *Renderer) paintRow(row int, line string) {
	if r.width > 0 && ansi.StringWidth(line) > r.width {
		line = ansi.Truncate(line, r.width, "")
	}
	r.out.MoveCursor(row+1, 1)
	r.out.ClearLine()
	io.WriteString(r.out, line)
}
