package viewport

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// lines is a minimal Lines implementation for tests.
type lines []string

func (l lines) LineCount() int { return len(l) }

func (l lines) LineLen(row int) int {
	if row < 0 || row >= len(l) {
		return 0
	}
	return len([]rune(l[row]))
}

func numbered(n int) lines {
	out := make(lines, n)
	for i := range out {
		out[i] = fmt.Sprintf("line %d", i)
	}
	return out
}

func TestNew(t *testing.T) {
	s := New(80, 24)
	require.Equal(t, Cursor{}, s.Cursor)
	require.Equal(t, 0, s.RowOffset)
	require.Equal(t, 23, s.ContentRows())
}

func TestContentRows_TinyTerminal(t *testing.T) {
	require.Equal(t, 1, New(10, 1).ContentRows())
	require.Equal(t, 1, New(10, 0).ContentRows())
}

func TestMoveVert_ZeroIsNoop(t *testing.T) {
	buf := numbered(50)
	s := New(80, 10)
	s.Cursor = Cursor{X: 3, Y: 4}
	s.RowOffset = 7
	before := *s

	shift, ok := s.MoveVert(buf, 0)
	require.False(t, ok)
	require.Equal(t, Shift{}, shift)
	require.Equal(t, before, *s)
}

func TestMoveVert_WithinViewport(t *testing.T) {
	buf := numbered(50)
	s := New(80, 10)

	_, ok := s.MoveVert(buf, 3)
	require.False(t, ok)
	require.Equal(t, 3, s.Cursor.Y)
	require.Equal(t, 0, s.RowOffset)

	_, ok = s.MoveVert(buf, -2)
	require.False(t, ok)
	require.Equal(t, 1, s.Cursor.Y)
}

func TestMoveVert_ScrollsAtBottomEdge(t *testing.T) {
	buf := numbered(50)
	h := 10
	s := New(80, h)
	s.Cursor.Y = h - 2

	shift, ok := s.MoveVert(buf, 1)
	require.True(t, ok)
	require.Equal(t, 1, s.RowOffset)
	require.Equal(t, h-2, s.Cursor.Y)
	require.Equal(t, Shift{Lines: 1, Row: h - 2}, shift)
	require.Equal(t, h-1, s.Row())
}

func TestMoveVert_ScrollsAtTopEdge(t *testing.T) {
	buf := numbered(50)
	s := New(80, 10)
	s.RowOffset = 5

	shift, ok := s.MoveVert(buf, -1)
	require.True(t, ok)
	require.Equal(t, 4, s.RowOffset)
	require.Equal(t, 0, s.Cursor.Y)
	require.Equal(t, Shift{Lines: -1, Row: 0}, shift)
}

func TestMoveVert_LargeUpwardJumpLandsOnTopRows(t *testing.T) {
	buf := numbered(50)
	s := New(80, 10)
	s.RowOffset = 2
	s.Cursor.Y = 1

	shift, ok := s.MoveVert(buf, -3)
	require.True(t, ok)
	require.Equal(t, 0, s.RowOffset)
	require.Equal(t, 0, s.Cursor.Y)
	require.Equal(t, -2, shift.Lines)
}

func TestMoveVert_ClampedToBuffer(t *testing.T) {
	buf := numbered(3)
	s := New(80, 10)

	_, ok := s.MoveVert(buf, 10)
	require.False(t, ok)
	require.Equal(t, 2, s.Row())

	_, ok = s.MoveVert(buf, 1)
	require.False(t, ok)
	require.Equal(t, 2, s.Row())

	_, ok = s.MoveVert(buf, -10)
	require.False(t, ok)
	require.Equal(t, 0, s.Row())
}

func TestMoveVert_ClampsColumnToShorterLine(t *testing.T) {
	buf := lines{"a long line", "ab", ""}
	s := New(80, 10)
	s.Cursor.X = 8

	s.MoveVert(buf, 1)
	require.Equal(t, 1, s.Cursor.X)

	s.MoveVert(buf, 1)
	require.Equal(t, 0, s.Cursor.X)
}

func TestMoveHoriz_ZeroIsNoop(t *testing.T) {
	buf := lines{"abc"}
	s := New(80, 10)
	s.Cursor.X = 3 // past the end, as insert mode allows
	s.MoveHoriz(buf, 0, false)
	require.Equal(t, 3, s.Cursor.X)
}

func TestMoveHoriz_Saturates(t *testing.T) {
	buf := lines{"abcd"}
	s := New(80, 10)

	s.MoveHoriz(buf, -5, false)
	require.Equal(t, 0, s.Cursor.X)

	s.MoveHoriz(buf, 100, false)
	require.Equal(t, 3, s.Cursor.X)

	s.MoveHoriz(buf, 100, true)
	require.Equal(t, 4, s.Cursor.X)
}

func TestMoveHoriz_EmptyLine(t *testing.T) {
	buf := lines{""}
	s := New(80, 10)
	s.MoveHoriz(buf, 1, false)
	require.Equal(t, 0, s.Cursor.X)
	s.MoveHoriz(buf, 1, true)
	require.Equal(t, 0, s.Cursor.X)
}

func TestClampCol(t *testing.T) {
	buf := lines{"abc"}
	s := New(80, 10)
	s.Cursor.X = 3

	s.ClampCol(buf, true)
	require.Equal(t, 3, s.Cursor.X)

	s.ClampCol(buf, false)
	require.Equal(t, 2, s.Cursor.X)
}

func TestSetCol(t *testing.T) {
	buf := lines{"abcdef"}
	s := New(80, 10)

	s.SetCol(buf, 4, false)
	require.Equal(t, 4, s.Cursor.X)
	s.SetCol(buf, 99, false)
	require.Equal(t, 5, s.Cursor.X)
	s.SetCol(buf, 99, true)
	require.Equal(t, 6, s.Cursor.X)
	s.SetCol(buf, -1, true)
	require.Equal(t, 0, s.Cursor.X)
}

func TestJumpTo(t *testing.T) {
	buf := numbered(50)
	s := New(80, 10)
	s.RowOffset = 4

	s.JumpTo(buf, 2, 3, false)
	require.Equal(t, Cursor{X: 2, Y: 3}, s.Cursor)
	require.Equal(t, 7, s.Row())
	require.Equal(t, 4, s.RowOffset)
}

func TestJumpTo_ClampsToViewportAndBuffer(t *testing.T) {
	buf := lines{"ab", "cd", "ef"}
	s := New(80, 10)

	s.JumpTo(buf, 30, 8, false)
	require.Equal(t, Cursor{X: 1, Y: 2}, s.Cursor)

	s.JumpTo(buf, 30, 8, true)
	require.Equal(t, Cursor{X: 2, Y: 2}, s.Cursor)

	big := numbered(100)
	s = New(80, 10)
	s.JumpTo(big, 0, 20, false)
	require.Equal(t, 8, s.Cursor.Y)
}

func TestScrollTo_VisibleRowOnlyMovesCursor(t *testing.T) {
	buf := numbered(50)
	s := New(80, 10)
	s.RowOffset = 10

	changed := s.ScrollTo(buf, 14)
	require.False(t, changed)
	require.Equal(t, 10, s.RowOffset)
	require.Equal(t, 4, s.Cursor.Y)
}

func TestScrollTo_OffscreenRowGoesToTop(t *testing.T) {
	buf := numbered(50)
	s := New(80, 10)

	changed := s.ScrollTo(buf, 30)
	require.True(t, changed)
	require.Equal(t, 30, s.RowOffset)
	require.Equal(t, 0, s.Cursor.Y)
	require.Equal(t, 30, s.Row())
}

func TestScrollTo_NearEndKeepsScreenFull(t *testing.T) {
	buf := numbered(50)
	s := New(80, 10)

	s.ScrollTo(buf, 48)
	require.Equal(t, 41, s.RowOffset)
	require.Equal(t, 48, s.Row())
}

func TestScrollTo_ClampsRowAndColumn(t *testing.T) {
	buf := lines{"abc", "de"}
	s := New(80, 10)
	s.Cursor.X = 2

	s.ScrollTo(buf, 99)
	require.Equal(t, 1, s.Row())
	require.Equal(t, 1, s.Cursor.X)
}

// Any sequence of motions keeps the cursor on a real character (or column 0
// of an empty line) and inside the content rows.
func TestMotions_PreserveInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := lines(rapid.SliceOfN(rapid.StringMatching(`[a-z]{0,10}`), 1, 40).Draw(t, "lines"))
		s := New(40, rapid.IntRange(2, 12).Draw(t, "height"))

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				prevOffset := s.RowOffset
				shift, ok := s.MoveVert(buf, rapid.IntRange(-5, 5).Draw(t, "dy"))
				if ok {
					require.Equal(t, s.RowOffset-prevOffset, shift.Lines)
				} else {
					require.Equal(t, prevOffset, s.RowOffset)
				}
			case 1:
				s.MoveHoriz(buf, rapid.IntRange(-5, 5).Draw(t, "dx"), false)
			case 2:
				s.JumpTo(buf, rapid.IntRange(0, 50).Draw(t, "x"), rapid.IntRange(0, 20).Draw(t, "y"), false)
			case 3:
				s.ScrollTo(buf, rapid.IntRange(0, 60).Draw(t, "row"))
			}

			require.GreaterOrEqual(t, s.Cursor.Y, 0)
			require.Less(t, s.Cursor.Y, s.ContentRows())
			require.GreaterOrEqual(t, s.RowOffset, 0)
			require.Less(t, s.Row(), buf.LineCount())
			require.GreaterOrEqual(t, s.Cursor.X, 0)
			require.LessOrEqual(t, s.Cursor.X, max(buf.LineLen(s.Row())-1, 0))
		}
	})
}
