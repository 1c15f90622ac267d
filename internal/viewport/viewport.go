// Package viewport maps logical buffer positions onto a bounded terminal region.
//
// The cursor is viewport-relative: Cursor.Y is a screen row and the logical
// buffer row is Cursor.Y + RowOffset. The bottom terminal row is reserved for
// the status line, so Height-1 rows show buffer content.
package viewport

// Lines is the read-only view of a text buffer that bounds checking needs.
type Lines interface {
	LineCount() int
	LineLen(row int) int
}

// Cursor is a viewport-relative position. X is a column on the current line
// and Y is a screen row in [0, ContentRows()).
type Cursor struct {
	X int
	Y int
}

// Shift describes content that moved on screen because the viewport scrolled.
type Shift struct {
	// Lines is how far content moved: positive scrolls forward (content moves
	// up), negative scrolls back (content moves down).
	Lines int
	// Row is the viewport row entering at the edge (bottom when scrolling
	// forward, top when scrolling back). A one-line shift only needs this row
	// repainted after the terminal itself scrolls.
	Row int
}

// State is the cursor, the vertical scroll offset and the terminal geometry.
//
// Invariants: Cursor.Y+RowOffset is a valid buffer row and Cursor.X never
// exceeds the length of that row. RowOffset changes only through the scroll
// paths of MoveVert and ScrollTo.
type State struct {
	Cursor    Cursor
	RowOffset int
	Width     int
	Height    int
}

// New creates a state for a terminal of the given size with the cursor at the origin.
func New(width, height int) *State {
	return &State{Width: width, Height: height}
}

// Row returns the logical buffer row under the cursor.
func (s *State) Row() int {
	return s.Cursor.Y + s.RowOffset
}

// ContentRows returns the number of screen rows available for buffer text.
func (s *State) ContentRows() int {
	return max(s.Height-1, 1)
}

// bottom is the last screen row that shows buffer text.
func (s *State) bottom() int {
	return s.ContentRows() - 1
}

// MoveVert moves the cursor by delta logical rows, clamped to the buffer.
//
// When the move would leave the viewport the content scrolls instead and the
// cursor keeps its screen row; the returned Shift names the row revealed at
// the edge. ok is false when no scroll happened. After moving, the column is
// clamped so the cursor rests on a character of the destination line.
func (s *State) MoveVert(buf Lines, delta int) (shift Shift, ok bool) {
	row := s.Row()
	target := min(max(row+delta, 0), buf.LineCount()-1)
	delta = target - row
	if delta == 0 {
		return Shift{}, false
	}

	switch {
	case delta > 0 && s.Cursor.Y+delta > s.bottom():
		s.RowOffset += delta
		shift, ok = Shift{Lines: delta, Row: s.bottom()}, true
	case delta < 0 && s.Cursor.Y+delta < 0:
		offset := s.RowOffset + delta
		if offset < 0 {
			// Not enough rows above to keep the screen row; land on the top rows.
			s.Cursor.Y = target
			offset = 0
		}
		shift, ok = Shift{Lines: offset - s.RowOffset, Row: 0}, true
		s.RowOffset = offset
	default:
		s.Cursor.Y += delta
	}

	s.Cursor.X = min(s.Cursor.X, max(buf.LineLen(s.Row()), 1)-1)
	return shift, ok
}

// MoveHoriz moves the cursor by delta columns, saturating at the line bounds.
// insert allows the position one past the last character.
func (s *State) MoveHoriz(buf Lines, delta int, insert bool) {
	if delta == 0 {
		return
	}
	s.Cursor.X = min(max(s.Cursor.X+delta, 0), s.maxCol(buf, insert))
}

// ClampCol re-applies the column bound for the current mode. Used when
// leaving insert mode, where the cursor may sit past the last character.
func (s *State) ClampCol(buf Lines, insert bool) {
	s.Cursor.X = min(max(s.Cursor.X, 0), s.maxCol(buf, insert))
}

// SetCol places the cursor at col on the current line, clamped to the mode's bound.
func (s *State) SetCol(buf Lines, col int, insert bool) {
	s.Cursor.X = min(max(col, 0), s.maxCol(buf, insert))
}

// JumpTo moves the cursor to the screen cell (x, y), both 0-based. Rows past
// the end of the buffer land on the last visible line.
func (s *State) JumpTo(buf Lines, x, y int, insert bool) {
	lastVisible := min(s.bottom(), buf.LineCount()-1-s.RowOffset)
	s.Cursor.Y = min(max(y, 0), lastVisible)
	s.SetCol(buf, x, insert)
}

// ScrollTo makes row the current logical row, scrolling so that it is visible.
// If the row is already on screen only the cursor moves; otherwise the row is
// placed at the top of the viewport (or as low as the buffer allows). Rows
// outside the buffer are clamped. Returns true if RowOffset changed.
func (s *State) ScrollTo(buf Lines, row int) bool {
	row = min(max(row, 0), buf.LineCount()-1)
	if row >= s.RowOffset && row-s.RowOffset <= s.bottom() {
		s.Cursor.Y = row - s.RowOffset
		s.ClampCol(buf, false)
		return false
	}

	offset := row
	// Avoid leaving empty screen rows below the end of the buffer.
	if last := buf.LineCount() - s.ContentRows(); offset > last {
		offset = max(last, 0)
	}
	changed := offset != s.RowOffset
	s.RowOffset = offset
	s.Cursor.Y = row - offset
	s.ClampCol(buf, false)
	return changed
}

func (s *State) maxCol(buf Lines, insert bool) int {
	n := buf.LineLen(s.Row())
	if insert {
		return n
	}
	return max(n-1, 0)
}
