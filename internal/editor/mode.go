// Package editor implements the modal state machine: it interprets input
// events as buffer and viewport mutations, mode transitions and redraw
// intents, and produces the status-line text.
package editor

// ModeKind identifies the active editing mode.
type ModeKind int

const (
	// ModeNormal is the default mode for navigation and single-key edits.
	ModeNormal ModeKind = iota
	// ModeInsert is the mode for typing text.
	ModeInsert
	// ModeCommand is the mode for typing a command line after ':'.
	ModeCommand
)

// String returns the string representation of the mode kind.
func (k ModeKind) String() string {
	switch k {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// Mode is the active mode. Only the command mode carries state: the command
// line being typed.
type Mode struct {
	kind    ModeKind
	pending []rune
}

// Normal returns the normal mode.
func Normal() Mode { return Mode{kind: ModeNormal} }

// Insert returns the insert mode.
func Insert() Mode { return Mode{kind: ModeInsert} }

// CommandMode returns the command mode with text already typed.
func CommandMode(text string) Mode { return Mode{kind: ModeCommand, pending: []rune(text)} }

// Kind returns which mode this is.
func (m Mode) Kind() ModeKind { return m.kind }

// Pending returns the command line typed so far. Empty outside command mode.
func (m Mode) Pending() string { return string(m.pending) }

// String renders the mode for the status line, e.g. "NORMAL" or "COMMAND:wq".
func (m Mode) String() string {
	if m.kind == ModeCommand {
		return m.kind.String() + ":" + string(m.pending)
	}
	return m.kind.String()
}

// push appends r to the command line.
func (m *Mode) push(r rune) {
	m.pending = append(m.pending, r)
}

// pop removes the last command-line character. It reports false when the
// command line was already empty.
func (m *Mode) pop() bool {
	if len(m.pending) == 0 {
		return false
	}
	m.pending = m.pending[:len(m.pending)-1]
	return true
}
