// Package render draws the buffer, the status line and the cursor onto a
// terminal, repainting only what a processed event invalidated.
package render

import (
	"bufio"
	"io"

	"github.com/charmbracelet/x/ansi"
)

// Terminal is the byte-oriented output sink. Writes are buffered and only
// reach the underlying writer on Flush, so one processed event produces one
// write.
//
// Positions taken by Terminal methods are 0-based.
type Terminal struct {
	w *bufio.Writer
}

// NewTerminal wraps w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: bufio.NewWriter(w)}
}

// Setup switches to the alternate screen and enables mouse press reporting.
func (t *Terminal) Setup() error {
	t.write(ansi.SetAltScreenSaveCursorMode)
	t.write(ansi.SetNormalMouseMode)
	t.write(ansi.SetSgrExtMouseMode)
	t.ClearScreen()
	return t.Flush()
}

// Restore undoes Setup.
func (t *Terminal) Restore() error {
	t.write(ansi.ResetSgrExtMouseMode)
	t.write(ansi.ResetNormalMouseMode)
	t.write(ansi.ShowCursor)
	t.write(ansi.ResetAltScreenSaveCursorMode)
	return t.Flush()
}

// ClearScreen erases the whole screen.
func (t *Terminal) ClearScreen() { t.write(ansi.EraseEntireScreen) }

// ClearLine erases the line the cursor is on.
func (t *Terminal) ClearLine() { t.write(ansi.EraseEntireLine) }

// MoveTo places the cursor at column col of row row.
func (t *Terminal) MoveTo(col, row int) { t.write(ansi.CursorPosition(col+1, row+1)) }

// Scroll shifts the terminal contents by n lines: positive n scrolls up (new
// blank lines at the bottom), negative n scrolls down.
func (t *Terminal) Scroll(n int) {
	switch {
	case n > 0:
		t.write(ansi.ScrollUp(n))
	case n < 0:
		t.write(ansi.ScrollDown(-n))
	}
}

// HideCursor hides the cursor while a frame is drawn.
func (t *Terminal) HideCursor() { t.write(ansi.HideCursor) }

// ShowCursor shows the cursor again.
func (t *Terminal) ShowCursor() { t.write(ansi.ShowCursor) }

// WriteString writes s at the cursor.
func (t *Terminal) WriteString(s string) { t.write(s) }

// Flush pushes everything written since the last flush to the terminal.
func (t *Terminal) Flush() error {
	return t.w.Flush()
}

// bufio.Writer keeps the first write error and returns it from Flush.
func (t *Terminal) write(s string) {
	_, _ = t.w.WriteString(s)
}
