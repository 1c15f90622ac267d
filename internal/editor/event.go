package editor

import "fmt"

// EventType classifies a decoded input event.
type EventType int

const (
	// EventRune is a printable character.
	EventRune EventType = iota
	// EventCtrl is a control-modified letter; Rune holds the lower-case letter.
	EventCtrl
	EventEscape
	EventBackspace
	EventEnter
	// EventMouse is a mouse button press at 1-based terminal coordinates.
	EventMouse
)

// Event is one discrete input event.
type Event struct {
	Type EventType
	Rune rune
	// X and Y are 1-based terminal coordinates for EventMouse.
	X, Y int
}

// Rune returns a printable character event.
func Rune(r rune) Event { return Event{Type: EventRune, Rune: r} }

// Ctrl returns a control-modified letter event.
func Ctrl(r rune) Event { return Event{Type: EventCtrl, Rune: r} }

// Key returns an event without payload (Escape, Backspace, Enter).
func Key(t EventType) Event { return Event{Type: t} }

// Mouse returns a press at the 1-based terminal cell (x, y).
func Mouse(x, y int) Event { return Event{Type: EventMouse, X: x, Y: y} }

// key is the registry lookup key for the event.
// Examples: "h", "<ctrl+l>", "<escape>", "<enter>", "<backspace>", "<mouse>".
func (e Event) key() string {
	switch e.Type {
	case EventRune:
		return string(e.Rune)
	case EventCtrl:
		return fmt.Sprintf("<ctrl+%c>", e.Rune)
	case EventEscape:
		return "<escape>"
	case EventBackspace:
		return "<backspace>"
	case EventEnter:
		return "<enter>"
	case EventMouse:
		return "<mouse>"
	default:
		return ""
	}
}

// String is used in logs and trace attributes.
func (e Event) String() string {
	if e.Type == EventMouse {
		return fmt.Sprintf("<mouse %d,%d>", e.X, e.Y)
	}
	return e.key()
}
