package editor

import (
	"fmt"

	"github.com/zjrosen/modal/internal/log"
	"github.com/zjrosen/modal/internal/render"
	"github.com/zjrosen/modal/internal/textbuf"
	"github.com/zjrosen/modal/internal/viewport"
)

// FileStore reads and writes whole files.
type FileStore interface {
	Read(path string) (string, error)
	Write(path, text string) error
	// DiffSummary describes how text differs from the file at path.
	DiffSummary(path, text string) (string, error)
}

// Result is the outcome of handling one event.
type Result struct {
	// Intent is what the renderer must repaint.
	Intent render.Intent
	// Scroll is the terminal scroll to apply before repainting (see
	// render.Frame). It is zero whenever Intent is a full repaint.
	Scroll int
	// Quit ends the event loop.
	Quit bool
	// Saved is set when the buffer was written to disk.
	Saved bool
	// Command is the ID of the command that handled the event, or "".
	Command string
}

// Editor owns the buffer, the viewport and the mode. It is not safe for
// concurrent use; one goroutine feeds it events.
type Editor struct {
	path     string
	store    FileStore
	registry *CommandRegistry

	buf  *textbuf.Buffer
	vp   *viewport.State
	mode Mode

	modified bool
	// disk is the file content as last read or written by the editor.
	disk    string
	message string

	// per-event state
	event Event
	res   Result
}

// Option configures an Editor.
type Option func(*Editor)

// WithRegistry replaces DefaultRegistry.
func WithRegistry(r *CommandRegistry) Option {
	return func(e *Editor) { e.registry = r }
}

// New creates an editor for path holding text, on a terminal of the given size.
func New(path, text string, width, height int, store FileStore, opts ...Option) *Editor {
	e := &Editor{
		path:     path,
		store:    store,
		registry: DefaultRegistry,
		buf:      textbuf.New(text),
		vp:       viewport.New(width, height),
		mode:     Normal(),
		disk:     text,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle processes one input event to completion.
func (e *Editor) Handle(ev Event) Result {
	e.event = ev
	e.res = Result{}
	e.message = ""

	cmd, ok := e.registry.Lookup(e.mode.Kind(), ev)
	if !ok {
		return e.res
	}

	prev := e.mode.Kind()
	e.res.Command = cmd.ID()
	if cmd.Execute(e) == Executed && cmd.ChangesContent() {
		e.modified = true
		log.Debug(log.CatBuffer, "edit", "cmd", cmd.ID(), "row", e.vp.Row(), "lines", e.buf.LineCount())
	}
	if cmd.IsModeChange() && e.mode.Kind() != prev {
		log.Debug(log.CatMode, "mode change", "from", prev, "to", e.mode.Kind(), "cmd", cmd.ID())
	}

	if e.res.Intent.Kind == render.IntentFull {
		e.res.Scroll = 0
	}
	return e.res
}

// Status returns the status-line text: the most recent message, or the mode
// and the 1-based cursor position.
func (e *Editor) Status() string {
	if e.message != "" {
		return e.message
	}
	return fmt.Sprintf("%s %d:%d", e.mode, e.vp.Row()+1, e.vp.Cursor.X+1)
}

// SetMessage shows msg on the status line until the next event.
func (e *Editor) SetMessage(msg string) {
	e.message = msg
}

// Mode returns the active mode.
func (e *Editor) Mode() Mode { return e.mode }

// Buffer returns the text buffer.
func (e *Editor) Buffer() *textbuf.Buffer { return e.buf }

// Viewport returns the viewport state.
func (e *Editor) Viewport() *viewport.State { return e.vp }

// Path returns the path of the edited file.
func (e *Editor) Path() string { return e.path }

// Modified reports whether the buffer has edits not yet written to disk.
func (e *Editor) Modified() bool { return e.modified }

// Position returns the logical cursor position (0-based row and column).
func (e *Editor) Position() (row, col int) {
	return e.vp.Row(), e.vp.Cursor.X
}

// RestorePosition moves the cursor to a logical position, scrolling if the
// row is not visible. Out-of-range positions are clamped.
func (e *Editor) RestorePosition(row, col int) render.Intent {
	e.vp.ScrollTo(e.buf, row)
	e.vp.SetCol(e.buf, col, e.mode.Kind() == ModeInsert)
	return render.Full()
}

// Reload replaces the buffer with text read from disk and drops the
// modified flag. The cursor keeps its logical row where possible.
func (e *Editor) Reload(text string) render.Intent {
	row, col := e.Position()
	e.buf = textbuf.New(text)
	e.disk = text
	e.modified = false
	e.vp.ScrollTo(e.buf, row)
	e.vp.SetCol(e.buf, col, false)
	return render.Full()
}

// ExternalChange reports whether the file content on disk differs from what
// the editor last read or wrote. The new content becomes the reference, so
// each external change is reported once.
func (e *Editor) ExternalChange(disk string) bool {
	if disk == e.disk {
		return false
	}
	e.disk = disk
	return true
}

// ============================================================================
// Helpers used by commands
// ============================================================================

func (e *Editor) insert() bool { return e.mode.Kind() == ModeInsert }

func (e *Editor) redraw(i render.Intent) {
	e.res.Intent = e.res.Intent.Merge(i)
}

// redrawCursorLine repaints the row the cursor is on.
func (e *Editor) redrawCursorLine() {
	e.redraw(render.Line(e.vp.Cursor.Y))
}

// moveVert moves vertically and turns any viewport scroll into a terminal
// scroll plus a repaint of the revealed row. Scrolls of more than one line
// fall back to a full repaint.
func (e *Editor) moveVert(delta int) {
	shift, ok := e.vp.MoveVert(e.buf, delta)
	if !ok {
		return
	}
	if shift.Lines == 1 || shift.Lines == -1 {
		e.res.Scroll += shift.Lines
		e.redraw(render.Line(shift.Row))
		return
	}
	e.redraw(render.Full())
}

func (e *Editor) setMode(m Mode) {
	e.mode = m
}

// save writes the buffer to disk and reports the outcome on the status line.
func (e *Editor) save() bool {
	text := e.buf.Text()
	if err := e.store.Write(e.path, text); err != nil {
		log.ErrorErr(log.CatFile, "save failed", err, "path", e.path)
		e.message = "Save failed! reason: " + err.Error()
		return false
	}
	e.disk = text
	e.modified = false
	e.res.Saved = true
	e.message = "Save complete"
	log.Info(log.CatFile, "saved", "path", e.path, "lines", e.buf.LineCount())
	return true
}
