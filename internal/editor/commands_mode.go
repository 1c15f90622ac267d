package editor

import "github.com/zjrosen/modal/internal/render"

// ============================================================================
// Mode Entry Commands
// ============================================================================

// EnterInsertCommand enters insert mode at the cursor (i).
type EnterInsertCommand struct{ ModeEntryBase }

func (c *EnterInsertCommand) Execute(e *Editor) ExecuteResult {
	e.setMode(Insert())
	return Executed
}

func (c *EnterInsertCommand) Keys() []string { return []string{"i"} }
func (c *EnterInsertCommand) Mode() ModeKind { return ModeNormal }
func (c *EnterInsertCommand) ID() string     { return "mode.insert" }

// EnterInsertAfterCommand enters insert mode after the cursor (a).
type EnterInsertAfterCommand struct{ ModeEntryBase }

func (c *EnterInsertAfterCommand) Execute(e *Editor) ExecuteResult {
	e.setMode(Insert())
	e.vp.MoveHoriz(e.buf, 1, true)
	return Executed
}

func (c *EnterInsertAfterCommand) Keys() []string { return []string{"a"} }
func (c *EnterInsertAfterCommand) Mode() ModeKind { return ModeNormal }
func (c *EnterInsertAfterCommand) ID() string     { return "mode.insert_after" }

// EnterInsertLineStartCommand enters insert mode at column 0 (I).
type EnterInsertLineStartCommand struct{ ModeEntryBase }

func (c *EnterInsertLineStartCommand) Execute(e *Editor) ExecuteResult {
	e.setMode(Insert())
	e.vp.SetCol(e.buf, 0, true)
	return Executed
}

func (c *EnterInsertLineStartCommand) Keys() []string { return []string{"I"} }
func (c *EnterInsertLineStartCommand) Mode() ModeKind { return ModeNormal }
func (c *EnterInsertLineStartCommand) ID() string     { return "mode.insert_line_start" }

// EnterInsertLineEndCommand enters insert mode past the last character (A).
type EnterInsertLineEndCommand struct{ ModeEntryBase }

func (c *EnterInsertLineEndCommand) Execute(e *Editor) ExecuteResult {
	e.setMode(Insert())
	e.vp.SetCol(e.buf, e.buf.LineLen(e.vp.Row()), true)
	return Executed
}

func (c *EnterInsertLineEndCommand) Keys() []string { return []string{"A"} }
func (c *EnterInsertLineEndCommand) Mode() ModeKind { return ModeNormal }
func (c *EnterInsertLineEndCommand) ID() string     { return "mode.insert_line_end" }

// OpenLineBelowCommand opens a blank line below the cursor and enters insert
// mode on it (o).
type OpenLineBelowCommand struct{ ChangeBase }

func (c *OpenLineBelowCommand) Execute(e *Editor) ExecuteResult {
	e.buf.InsertBlankLine(e.vp.Row() + 1)
	e.moveVert(1)
	e.setMode(Insert())
	e.vp.SetCol(e.buf, 0, true)
	e.redraw(render.Full())
	return Executed
}

func (c *OpenLineBelowCommand) Keys() []string { return []string{"o"} }
func (c *OpenLineBelowCommand) Mode() ModeKind { return ModeNormal }
func (c *OpenLineBelowCommand) ID() string     { return "edit.open_below" }

// EnterCommandModeCommand starts a command line (:).
type EnterCommandModeCommand struct{ ModeEntryBase }

func (c *EnterCommandModeCommand) Execute(e *Editor) ExecuteResult {
	e.setMode(CommandMode(""))
	return Executed
}

func (c *EnterCommandModeCommand) Keys() []string { return []string{":"} }
func (c *EnterCommandModeCommand) Mode() ModeKind { return ModeNormal }
func (c *EnterCommandModeCommand) ID() string     { return "mode.command" }

// ExitInsertCommand returns to normal mode (Esc). The cursor is pulled back
// onto the last character if it was past the end of the line.
type ExitInsertCommand struct{ ModeEntryBase }

func (c *ExitInsertCommand) Execute(e *Editor) ExecuteResult {
	e.setMode(Normal())
	e.vp.ClampCol(e.buf, false)
	return Executed
}

func (c *ExitInsertCommand) Keys() []string { return []string{"<escape>"} }
func (c *ExitInsertCommand) Mode() ModeKind { return ModeInsert }
func (c *ExitInsertCommand) ID() string     { return "mode.normal" }

// ============================================================================
// Special Commands
// ============================================================================

// QuitCommand ends the editor loop (q). Unsaved edits are discarded.
type QuitCommand struct{ MotionBase }

func (c *QuitCommand) Execute(e *Editor) ExecuteResult {
	e.res.Quit = true
	return Executed
}

func (c *QuitCommand) Keys() []string { return []string{"q"} }
func (c *QuitCommand) Mode() ModeKind { return ModeNormal }
func (c *QuitCommand) ID() string     { return "app.quit" }

// RedrawCommand repaints the whole viewport (Ctrl-L).
type RedrawCommand struct{ MotionBase }

func (c *RedrawCommand) Execute(e *Editor) ExecuteResult {
	e.redraw(render.Full())
	return Executed
}

func (c *RedrawCommand) Keys() []string { return []string{"<ctrl+l>"} }
func (c *RedrawCommand) Mode() ModeKind { return ModeNormal }
func (c *RedrawCommand) ID() string     { return "view.redraw" }

// ============================================================================
// Command-Line Commands
// ============================================================================

// CommandLineAppendCommand appends the typed character to the command line.
type CommandLineAppendCommand struct{ MotionBase }

func (c *CommandLineAppendCommand) Execute(e *Editor) ExecuteResult {
	e.mode.push(e.event.Rune)
	return Executed
}

func (c *CommandLineAppendCommand) Keys() []string { return []string{charKey} }
func (c *CommandLineAppendCommand) Mode() ModeKind { return ModeCommand }
func (c *CommandLineAppendCommand) ID() string     { return "cmdline.append" }

// CommandLineBackspaceCommand removes the last command-line character, or
// leaves command mode when the line is already empty.
type CommandLineBackspaceCommand struct{ ModeEntryBase }

func (c *CommandLineBackspaceCommand) Execute(e *Editor) ExecuteResult {
	if !e.mode.pop() {
		e.setMode(Normal())
	}
	return Executed
}

func (c *CommandLineBackspaceCommand) Keys() []string { return []string{"<backspace>"} }
func (c *CommandLineBackspaceCommand) Mode() ModeKind { return ModeCommand }
func (c *CommandLineBackspaceCommand) ID() string     { return "cmdline.backspace" }

// CommandLineCancelCommand discards the command line (Esc, Ctrl-C).
type CommandLineCancelCommand struct{ ModeEntryBase }

func (c *CommandLineCancelCommand) Execute(e *Editor) ExecuteResult {
	e.setMode(Normal())
	return Executed
}

func (c *CommandLineCancelCommand) Keys() []string { return []string{"<escape>", "<ctrl+c>"} }
func (c *CommandLineCancelCommand) Mode() ModeKind { return ModeCommand }
func (c *CommandLineCancelCommand) ID() string     { return "cmdline.cancel" }

// CommandLineExecuteCommand runs the typed command line (Enter).
type CommandLineExecuteCommand struct{ ModeEntryBase }

func (c *CommandLineExecuteCommand) Execute(e *Editor) ExecuteResult {
	e.runCommandLine(e.mode.Pending())
	return Executed
}

func (c *CommandLineExecuteCommand) Keys() []string { return []string{"<enter>"} }
func (c *CommandLineExecuteCommand) Mode() ModeKind { return ModeCommand }
func (c *CommandLineExecuteCommand) ID() string     { return "cmdline.execute" }
