package editor

// ExecuteResult indicates the outcome of command execution.
type ExecuteResult int

const (
	// Executed means the command ran and consumed the event.
	Executed ExecuteResult = iota
	// Skipped means pre-conditions weren't met (e.g., backspace at column 0).
	Skipped
)

// Command is one key binding: an operation on the editor triggered by a key
// in a given mode.
type Command interface {
	// Execute applies the command. The triggering event is available as
	// e.event.
	Execute(e *Editor) ExecuteResult

	// Keys returns the trigger key(s) that invoke this command.
	// For printable characters: []string{"h"}
	// For special keys: []string{"<backspace>"}, []string{"<ctrl+u>"}
	// For aliases: []string{"<backspace>", "<ctrl+h>"}
	// charKey matches any printable character without a binding of its own.
	Keys() []string

	// Mode returns which mode this command operates in.
	Mode() ModeKind

	// ID returns a hierarchical identifier for this command type.
	// Used for logging and tracing. Examples: "move.down", "delete.char".
	ID() string

	// ChangesContent returns true if this command modifies the text.
	// Used to track unsaved edits.
	ChangesContent() bool

	// IsModeChange returns true if this command changes the mode.
	IsModeChange() bool
}

// charKey is the registry key of the fallback command for printable characters.
const charKey = "<char>"

// ============================================================================
// Base structs for reducing boilerplate in Command implementations
// ============================================================================

// MotionBase is embedded by commands that only move the cursor.
type MotionBase struct{}

func (MotionBase) ChangesContent() bool { return false }
func (MotionBase) IsModeChange() bool   { return false }

// EditBase is embedded by commands that change text without changing mode.
type EditBase struct{}

func (EditBase) ChangesContent() bool { return true }
func (EditBase) IsModeChange() bool   { return false }

// ModeEntryBase is embedded by commands that switch mode without editing.
type ModeEntryBase struct{}

func (ModeEntryBase) ChangesContent() bool { return false }
func (ModeEntryBase) IsModeChange() bool   { return true }

// ChangeBase is embedded by commands that edit text and switch mode.
type ChangeBase struct{}

func (ChangeBase) ChangesContent() bool { return true }
func (ChangeBase) IsModeChange() bool   { return true }

// ============================================================================
// CommandRegistry
// ============================================================================

// CommandRegistry provides mode-aware, key-based command dispatch.
type CommandRegistry struct {
	// commands maps Mode -> trigger key -> command
	commands map[ModeKind]map[string]Command
}

// NewCommandRegistry creates an empty registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{commands: make(map[ModeKind]map[string]Command)}
}

// Register binds cmd to each of its keys in its mode. A later registration
// for the same key replaces the earlier one.
func (r *CommandRegistry) Register(cmd Command) {
	byKey, ok := r.commands[cmd.Mode()]
	if !ok {
		byKey = make(map[string]Command)
		r.commands[cmd.Mode()] = byKey
	}
	for _, k := range cmd.Keys() {
		byKey[k] = cmd
	}
}

// Get returns the command bound to key in mode.
func (r *CommandRegistry) Get(mode ModeKind, key string) (Command, bool) {
	cmd, ok := r.commands[mode][key]
	return cmd, ok
}

// Lookup resolves the command for ev in mode, falling back to the printable
// character binding for runes without a binding of their own.
func (r *CommandRegistry) Lookup(mode ModeKind, ev Event) (Command, bool) {
	if cmd, ok := r.Get(mode, ev.key()); ok {
		return cmd, true
	}
	if ev.Type == EventRune {
		return r.Get(mode, charKey)
	}
	return nil, false
}

// DefaultRegistry is the global command registry with all built-in commands registered.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()

	// Normal mode: motions
	r.Register(&MoveLeftCommand{})
	r.Register(&MoveRightCommand{})
	r.Register(&MoveDownCommand{})
	r.Register(&MoveUpCommand{})
	r.Register(&LineStartCommand{})
	r.Register(&LineEndCommand{})
	r.Register(&WordForwardCommand{})
	r.Register(&MouseJumpCommand{mode: ModeNormal})

	// Normal mode: edits
	r.Register(&DeleteCharCommand{})
	r.Register(&JoinLinesCommand{})

	// Normal mode: mode entry
	r.Register(&EnterInsertCommand{})
	r.Register(&EnterInsertAfterCommand{})
	r.Register(&EnterInsertLineStartCommand{})
	r.Register(&EnterInsertLineEndCommand{})
	r.Register(&OpenLineBelowCommand{})
	r.Register(&EnterCommandModeCommand{})

	// Normal mode: special
	r.Register(&QuitCommand{})
	r.Register(&RedrawCommand{})

	// Insert mode
	r.Register(&InsertTextCommand{})
	r.Register(&SplitLineCommand{})
	r.Register(&DeleteBackCommand{})
	r.Register(&ClearToLineStartCommand{})
	r.Register(&InsertLineStartCommand{})
	r.Register(&InsertLineEndCommand{})
	r.Register(&ExitInsertCommand{})
	r.Register(&MouseJumpCommand{mode: ModeInsert})

	// Command mode
	r.Register(&CommandLineAppendCommand{})
	r.Register(&CommandLineBackspaceCommand{})
	r.Register(&CommandLineCancelCommand{})
	r.Register(&CommandLineExecuteCommand{})

	return r
}
