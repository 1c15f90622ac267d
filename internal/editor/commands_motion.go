package editor

import "unicode"

// ============================================================================
// Motion Commands
// ============================================================================

// MoveLeftCommand moves the cursor one character left (h).
type MoveLeftCommand struct{ MotionBase }

// Execute moves the cursor one character to the left.
func (c *MoveLeftCommand) Execute(e *Editor) ExecuteResult {
	e.vp.MoveHoriz(e.buf, -1, false)
	return Executed
}

func (c *MoveLeftCommand) Keys() []string { return []string{"h"} }
func (c *MoveLeftCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveLeftCommand) ID() string     { return "move.left" }

// MoveRightCommand moves the cursor one character right (l).
type MoveRightCommand struct{ MotionBase }

// Execute moves the cursor one character to the right, stopping on the last character.
func (c *MoveRightCommand) Execute(e *Editor) ExecuteResult {
	e.vp.MoveHoriz(e.buf, 1, false)
	return Executed
}

func (c *MoveRightCommand) Keys() []string { return []string{"l"} }
func (c *MoveRightCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveRightCommand) ID() string     { return "move.right" }

// MoveDownCommand moves the cursor one line down (j).
type MoveDownCommand struct{ MotionBase }

// Execute moves down, scrolling the viewport at the bottom edge.
func (c *MoveDownCommand) Execute(e *Editor) ExecuteResult {
	e.moveVert(1)
	return Executed
}

func (c *MoveDownCommand) Keys() []string { return []string{"j"} }
func (c *MoveDownCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveDownCommand) ID() string     { return "move.down" }

// MoveUpCommand moves the cursor one line up (k).
type MoveUpCommand struct{ MotionBase }

// Execute moves up, scrolling the viewport at the top edge.
func (c *MoveUpCommand) Execute(e *Editor) ExecuteResult {
	e.moveVert(-1)
	return Executed
}

func (c *MoveUpCommand) Keys() []string { return []string{"k"} }
func (c *MoveUpCommand) Mode() ModeKind { return ModeNormal }
func (c *MoveUpCommand) ID() string     { return "move.up" }

// LineStartCommand moves to column 0 (0).
type LineStartCommand struct{ MotionBase }

func (c *LineStartCommand) Execute(e *Editor) ExecuteResult {
	e.vp.SetCol(e.buf, 0, false)
	return Executed
}

func (c *LineStartCommand) Keys() []string { return []string{"0"} }
func (c *LineStartCommand) Mode() ModeKind { return ModeNormal }
func (c *LineStartCommand) ID() string     { return "move.line_start" }

// LineEndCommand moves to the last character of the line ($).
type LineEndCommand struct{ MotionBase }

func (c *LineEndCommand) Execute(e *Editor) ExecuteResult {
	e.vp.SetCol(e.buf, e.buf.LineLen(e.vp.Row())-1, false)
	return Executed
}

func (c *LineEndCommand) Keys() []string { return []string{"$"} }
func (c *LineEndCommand) Mode() ModeKind { return ModeNormal }
func (c *LineEndCommand) ID() string     { return "move.line_end" }

// WordForwardCommand moves to the start of the next whitespace-delimited word
// on the current line (w). It never wraps to the next line; with no further
// word it stops on the last character.
type WordForwardCommand struct{ MotionBase }

func (c *WordForwardCommand) Execute(e *Editor) ExecuteResult {
	row := e.vp.Row()
	n := e.buf.LineLen(row)
	if n == 0 {
		return Skipped
	}

	col := e.vp.Cursor.X
	for col < n && !isSpaceAt(e, row, col) {
		col++
	}
	for col < n && isSpaceAt(e, row, col) {
		col++
	}
	e.vp.SetCol(e.buf, col, false)
	return Executed
}

func (c *WordForwardCommand) Keys() []string { return []string{"w"} }
func (c *WordForwardCommand) Mode() ModeKind { return ModeNormal }
func (c *WordForwardCommand) ID() string     { return "move.word_forward" }

func isSpaceAt(e *Editor, row, col int) bool {
	r, ok := e.buf.RuneAt(row, col)
	return ok && unicode.IsSpace(r)
}

// MouseJumpCommand moves the cursor to the pressed cell. The mode is kept.
type MouseJumpCommand struct {
	MotionBase
	mode ModeKind
}

// Execute translates the 1-based terminal cell into viewport coordinates.
// Presses on the status line or past the end of the buffer land on the last
// visible line.
func (c *MouseJumpCommand) Execute(e *Editor) ExecuteResult {
	e.vp.JumpTo(e.buf, e.event.X-1, e.event.Y-1, e.insert())
	return Executed
}

func (c *MouseJumpCommand) Keys() []string { return []string{"<mouse>"} }
func (c *MouseJumpCommand) Mode() ModeKind { return c.mode }
func (c *MouseJumpCommand) ID() string     { return "move.mouse" }
