package editor

import "github.com/zjrosen/modal/internal/render"

// ============================================================================
// Normal Mode Edit Commands
// ============================================================================

// DeleteCharCommand deletes the character under the cursor (x).
type DeleteCharCommand struct{ EditBase }

// Execute deletes the character and pulls the cursor left if it is now past
// the end of the line.
func (c *DeleteCharCommand) Execute(e *Editor) ExecuteResult {
	row := e.vp.Row()
	if e.buf.LineLen(row) == 0 {
		return Skipped
	}
	e.buf.DeleteChar(row, e.vp.Cursor.X)
	e.vp.ClampCol(e.buf, false)
	e.redrawCursorLine()
	return Executed
}

func (c *DeleteCharCommand) Keys() []string { return []string{"x"} }
func (c *DeleteCharCommand) Mode() ModeKind { return ModeNormal }
func (c *DeleteCharCommand) ID() string     { return "delete.char" }

// JoinLinesCommand joins the next line onto the current one (J).
type JoinLinesCommand struct{ EditBase }

// Execute joins with a single space and leaves the cursor at the join point.
// Every row below moves up, so the whole viewport is repainted.
func (c *JoinLinesCommand) Execute(e *Editor) ExecuteResult {
	col := e.buf.JoinLines(e.vp.Row())
	if col < 0 {
		return Skipped
	}
	e.vp.SetCol(e.buf, col, false)
	e.redraw(render.Full())
	return Executed
}

func (c *JoinLinesCommand) Keys() []string { return []string{"J"} }
func (c *JoinLinesCommand) Mode() ModeKind { return ModeNormal }
func (c *JoinLinesCommand) ID() string     { return "edit.join" }

// ============================================================================
// Insert Mode Commands
// ============================================================================

// InsertTextCommand inserts the typed character at the cursor.
type InsertTextCommand struct{ EditBase }

func (c *InsertTextCommand) Execute(e *Editor) ExecuteResult {
	e.buf.InsertChar(e.vp.Row(), e.vp.Cursor.X, e.event.Rune)
	e.vp.MoveHoriz(e.buf, 1, true)
	e.redrawCursorLine()
	return Executed
}

func (c *InsertTextCommand) Keys() []string { return []string{charKey} }
func (c *InsertTextCommand) Mode() ModeKind { return ModeInsert }
func (c *InsertTextCommand) ID() string     { return "insert.text" }

// SplitLineCommand splits the line at the cursor (Enter).
type SplitLineCommand struct{ EditBase }

// Execute moves the text right of the cursor to a new line below and puts the
// cursor at its start. The line count changed, so the viewport is repainted.
func (c *SplitLineCommand) Execute(e *Editor) ExecuteResult {
	e.buf.SplitLine(e.vp.Row(), e.vp.Cursor.X)
	e.moveVert(1)
	e.vp.SetCol(e.buf, 0, true)
	e.redraw(render.Full())
	return Executed
}

func (c *SplitLineCommand) Keys() []string { return []string{"<enter>"} }
func (c *SplitLineCommand) Mode() ModeKind { return ModeInsert }
func (c *SplitLineCommand) ID() string     { return "insert.newline" }

// DeleteBackCommand deletes the character before the cursor (Backspace, Ctrl-H).
type DeleteBackCommand struct{ EditBase }

func (c *DeleteBackCommand) Execute(e *Editor) ExecuteResult {
	x := e.vp.Cursor.X
	if x == 0 {
		return Skipped
	}
	e.buf.DeleteChar(e.vp.Row(), x-1)
	e.vp.MoveHoriz(e.buf, -1, true)
	e.redrawCursorLine()
	return Executed
}

func (c *DeleteBackCommand) Keys() []string { return []string{"<backspace>", "<ctrl+h>"} }
func (c *DeleteBackCommand) Mode() ModeKind { return ModeInsert }
func (c *DeleteBackCommand) ID() string     { return "delete.back" }

// ClearToLineStartCommand deletes everything left of the cursor (Ctrl-U).
type ClearToLineStartCommand struct{ EditBase }

func (c *ClearToLineStartCommand) Execute(e *Editor) ExecuteResult {
	x := e.vp.Cursor.X
	if x == 0 {
		return Skipped
	}
	e.buf.TruncateFrom(e.vp.Row(), x)
	e.vp.SetCol(e.buf, 0, true)
	e.redrawCursorLine()
	return Executed
}

func (c *ClearToLineStartCommand) Keys() []string { return []string{"<ctrl+u>"} }
func (c *ClearToLineStartCommand) Mode() ModeKind { return ModeInsert }
func (c *ClearToLineStartCommand) ID() string     { return "delete.to_line_start" }

// InsertLineStartCommand moves to the start of the line in insert mode (Ctrl-A).
type InsertLineStartCommand struct{ MotionBase }

func (c *InsertLineStartCommand) Execute(e *Editor) ExecuteResult {
	e.vp.SetCol(e.buf, 0, true)
	return Executed
}

func (c *InsertLineStartCommand) Keys() []string { return []string{"<ctrl+a>"} }
func (c *InsertLineStartCommand) Mode() ModeKind { return ModeInsert }
func (c *InsertLineStartCommand) ID() string     { return "move.insert_line_start" }

// InsertLineEndCommand moves past the last character in insert mode (Ctrl-E).
type InsertLineEndCommand struct{ MotionBase }

func (c *InsertLineEndCommand) Execute(e *Editor) ExecuteResult {
	e.vp.SetCol(e.buf, e.buf.LineLen(e.vp.Row()), true)
	return Executed
}

func (c *InsertLineEndCommand) Keys() []string { return []string{"<ctrl+e>"} }
func (c *InsertLineEndCommand) Mode() ModeKind { return ModeInsert }
func (c *InsertLineEndCommand) ID() string     { return "move.insert_line_end" }
