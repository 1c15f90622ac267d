package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/modal/internal/editor"
)

// translateKey maps a decoded key to editor events. Keys the editor has no
// use for yield nothing. Alt-modified keys arrive as Escape followed by the
// key, which is what the terminal sent.
func translateKey(msg tea.KeyMsg) []editor.Event {
	var events []editor.Event
	if msg.Alt {
		events = append(events, editor.Key(editor.EventEscape))
	}

	// Tab, Enter, Backspace and Escape share codes with control keys, so they
	// are matched first.
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			events = append(events, editor.Rune(r))
		}
	case tea.KeySpace:
		events = append(events, editor.Rune(' '))
	case tea.KeyTab:
		events = append(events, editor.Rune('\t'))
	case tea.KeyEnter:
		events = append(events, editor.Key(editor.EventEnter))
	case tea.KeyBackspace:
		events = append(events, editor.Key(editor.EventBackspace))
	case tea.KeyEsc:
		events = append(events, editor.Key(editor.EventEscape))
	default:
		if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
			events = append(events, editor.Ctrl(rune('a'+int(msg.Type-tea.KeyCtrlA))))
		}
	}
	return events
}

// translateMouse maps a button press to a 1-based mouse event. Releases,
// motion and the wheel are ignored.
func translateMouse(msg tea.MouseMsg) []editor.Event {
	ev := tea.MouseEvent(msg)
	if ev.Action != tea.MouseActionPress || ev.IsWheel() {
		return nil
	}
	return []editor.Event{editor.Mouse(ev.X+1, ev.Y+1)}
}
