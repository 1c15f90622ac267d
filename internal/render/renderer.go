package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/modal/internal/viewport"
)

// Source is the read-only view of the text buffer the renderer draws from.
type Source interface {
	LineCount() int
	Line(row int) string
}

// Frame is everything the renderer needs besides the buffer and viewport to
// present one processed event.
type Frame struct {
	Intent Intent
	// Scroll asks the terminal to shift its contents before any repaint
	// (see Terminal.Scroll). Rows uncovered by the shift must be named by
	// Intent. It is ignored for a full repaint.
	Scroll int
	// Status is the text for the status line.
	Status string
	// StatusStyle colours the status line.
	StatusStyle lipgloss.Style
}

// Renderer turns frames into terminal output.
type Renderer struct {
	term *Terminal
}

// New creates a renderer writing to term.
func New(term *Terminal) *Renderer {
	return &Renderer{term: term}
}

// Present draws f and leaves the cursor on the viewport cursor. The output for
// the whole frame is flushed once at the end.
func (r *Renderer) Present(src Source, vp *viewport.State, f Frame) error {
	r.term.HideCursor()
	if f.Intent.Kind != IntentFull {
		r.term.Scroll(f.Scroll)
	}

	switch f.Intent.Kind {
	case IntentFull:
		r.drawAll(src, vp)
	case IntentLine:
		r.drawLine(src, vp, f.Intent.Row)
	}

	r.drawStatus(vp, f.Status, f.StatusStyle)
	r.term.MoveTo(vp.Cursor.X, vp.Cursor.Y)
	r.term.ShowCursor()
	return r.term.Flush()
}

func (r *Renderer) drawAll(src Source, vp *viewport.State) {
	r.term.ClearScreen()
	rows := min(vp.ContentRows(), src.LineCount()-vp.RowOffset)
	for y := 0; y < rows; y++ {
		r.term.MoveTo(0, y)
		r.term.WriteString(clip(src.Line(y+vp.RowOffset), vp.Width))
	}
}

// drawLine repaints viewport row y. Rows past the end of the buffer are left blank.
func (r *Renderer) drawLine(src Source, vp *viewport.State, y int) {
	if y < 0 || y >= vp.ContentRows() {
		return
	}
	r.term.MoveTo(0, y)
	r.term.ClearLine()
	if row := y + vp.RowOffset; row < src.LineCount() {
		r.term.WriteString(clip(src.Line(row), vp.Width))
	}
}

func (r *Renderer) drawStatus(vp *viewport.State, status string, style lipgloss.Style) {
	r.term.MoveTo(0, vp.Height-1)
	r.term.ClearLine()
	if vp.Width > 0 {
		status = truncate.String(status, uint(vp.Width))
	}
	r.term.WriteString(style.Render(status))
}

// clip makes line safe to print on one terminal row of the given width.
// Each tab or control character occupies a single blank cell.
func clip(line string, width int) string {
	line = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, line)
	if width <= 0 {
		return line
	}
	return runewidth.Truncate(line, width, "")
}
