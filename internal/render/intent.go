package render

// IntentKind is how much of the viewport has to be repainted.
type IntentKind int

const (
	// IntentNone repaints nothing but the status line and cursor.
	IntentNone IntentKind = iota
	// IntentLine repaints a single viewport row.
	IntentLine
	// IntentFull clears the screen and repaints every content row.
	IntentFull
)

// String returns a short name, used in logs and trace attributes.
func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "none"
	case IntentLine:
		return "line"
	case IntentFull:
		return "full"
	default:
		return "unknown"
	}
}

// Intent is the redraw decision for one processed event. It is computed per
// event and consumed by the Renderer immediately.
type Intent struct {
	Kind IntentKind
	// Row is the viewport row for IntentLine.
	Row int
}

// None is the zero intent.
func None() Intent { return Intent{} }

// Line requests a repaint of viewport row.
func Line(row int) Intent { return Intent{Kind: IntentLine, Row: row} }

// Full requests a full viewport repaint.
func Full() Intent { return Intent{Kind: IntentFull} }

// Merge combines two intents raised while handling the same event.
// Two different single rows escalate to a full repaint.
func (i Intent) Merge(o Intent) Intent {
	switch {
	case i.Kind == IntentNone:
		return o
	case o.Kind == IntentNone:
		return i
	case i.Kind == IntentFull || o.Kind == IntentFull:
		return Full()
	case i.Row == o.Row:
		return i
	default:
		return Full()
	}
}
