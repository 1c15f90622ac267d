package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/modal/internal/viewport"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type testSource []string

func (s testSource) LineCount() int      { return len(s) }
func (s testSource) Line(row int) string { return s[row] }

func (s testSource) LineLen(row int) int { return len([]rune(s[row])) }

func newTestRenderer() (*Renderer, *bytes.Buffer) {
	var out bytes.Buffer
	return New(NewTerminal(&out)), &out
}

func TestIntentMerge(t *testing.T) {
	require.Equal(t, Line(2), None().Merge(Line(2)))
	require.Equal(t, Line(2), Line(2).Merge(None()))
	require.Equal(t, Line(2), Line(2).Merge(Line(2)))
	require.Equal(t, Full(), Line(2).Merge(Line(3)))
	require.Equal(t, Full(), Full().Merge(Line(1)))
	require.Equal(t, Full(), None().Merge(Full()))
	require.Equal(t, None(), None().Merge(None()))
}

func TestPresent_FullRepaint(t *testing.T) {
	r, out := newTestRenderer()
	src := testSource{"alpha", "beta", "gamma"}
	vp := viewport.New(20, 5)

	err := r.Present(src, vp, Frame{Intent: Full(), Status: "NORMAL 1:1"})
	require.NoError(t, err)

	s := out.String()
	require.Contains(t, s, ansi.EraseEntireScreen)
	require.Contains(t, s, ansi.CursorPosition(1, 1)+"alpha")
	require.Contains(t, s, ansi.CursorPosition(1, 2)+"beta")
	require.Contains(t, s, ansi.CursorPosition(1, 3)+"gamma")
	require.Contains(t, s, ansi.CursorPosition(1, 5)+ansi.EraseEntireLine+"NORMAL 1:1")
	require.True(t, strings.HasSuffix(s, ansi.CursorPosition(1, 1)+ansi.ShowCursor))
}

func TestPresent_FullRepaintStartsAtRowOffset(t *testing.T) {
	r, out := newTestRenderer()
	src := testSource{"l0", "l1", "l2", "l3", "l4", "l5"}
	vp := viewport.New(20, 4)
	vp.RowOffset = 2

	require.NoError(t, r.Present(src, vp, Frame{Intent: Full()}))

	s := out.String()
	require.NotContains(t, s, "l1")
	require.Contains(t, s, ansi.CursorPosition(1, 1)+"l2")
	require.Contains(t, s, ansi.CursorPosition(1, 3)+"l4")
	require.NotContains(t, s, "l5")
}

func TestPresent_SingleLine(t *testing.T) {
	r, out := newTestRenderer()
	src := testSource{"alpha", "beta"}
	vp := viewport.New(20, 5)
	vp.Cursor = viewport.Cursor{X: 2, Y: 1}

	require.NoError(t, r.Present(src, vp, Frame{Intent: Line(1), Status: "INSERT 2:3"}))

	s := out.String()
	require.NotContains(t, s, ansi.EraseEntireScreen)
	require.NotContains(t, s, "alpha")
	require.Contains(t, s, ansi.CursorPosition(1, 2)+ansi.EraseEntireLine+"beta")
	require.True(t, strings.HasSuffix(s, ansi.CursorPosition(3, 2)+ansi.ShowCursor))
}

func TestPresent_SingleLinePastEndIsBlank(t *testing.T) {
	r, out := newTestRenderer()
	vp := viewport.New(20, 5)

	require.NoError(t, r.Present(testSource{"only"}, vp, Frame{Intent: Line(3)}))
	require.Contains(t, out.String(), ansi.CursorPosition(1, 4)+ansi.EraseEntireLine+ansi.CursorPosition(1, 5))
}

func TestPresent_NoIntentOnlyStatusAndCursor(t *testing.T) {
	r, out := newTestRenderer()
	vp := viewport.New(20, 5)

	require.NoError(t, r.Present(testSource{"alpha"}, vp, Frame{Status: "NORMAL 1:1"}))

	s := out.String()
	require.NotContains(t, s, "alpha")
	require.Contains(t, s, "NORMAL 1:1")
}

func TestPresent_ScrollUpThenRevealedRow(t *testing.T) {
	r, out := newTestRenderer()
	src := testSource{"l0", "l1", "l2", "l3", "l4"}
	h := 4
	vp := viewport.New(20, h)
	vp.Cursor.Y = h - 2

	shift, ok := vp.MoveVert(src, 1)
	require.True(t, ok)

	require.NoError(t, r.Present(src, vp, Frame{Intent: Line(shift.Row), Scroll: shift.Lines}))

	s := out.String()
	scroll := strings.Index(s, ansi.ScrollUp(1))
	repaint := strings.Index(s, ansi.CursorPosition(1, h-1)+ansi.EraseEntireLine+"l3")
	require.GreaterOrEqual(t, scroll, 0)
	require.Greater(t, repaint, scroll)
	require.NotContains(t, s, "l1")
}

func TestPresent_ScrollDown(t *testing.T) {
	r, out := newTestRenderer()
	src := testSource{"l0", "l1", "l2", "l3", "l4"}
	vp := viewport.New(20, 4)
	vp.RowOffset = 2

	shift, ok := vp.MoveVert(src, -1)
	require.True(t, ok)
	require.NoError(t, r.Present(src, vp, Frame{Intent: Line(shift.Row), Scroll: shift.Lines}))

	s := out.String()
	require.Contains(t, s, ansi.ScrollDown(1))
	require.Contains(t, s, ansi.CursorPosition(1, 1)+ansi.EraseEntireLine+"l1")
}

func TestPresent_FullRepaintIgnoresScroll(t *testing.T) {
	r, out := newTestRenderer()
	src := testSource{"l0", "l1", "l2"}
	vp := viewport.New(20, 4)

	require.NoError(t, r.Present(src, vp, Frame{Intent: Full(), Scroll: 1}))

	s := out.String()
	require.NotContains(t, s, ansi.ScrollUp(1))
	require.Contains(t, s, ansi.EraseEntireScreen)
}

func TestPresent_ClipsLongLinesAndStatus(t *testing.T) {
	r, out := newTestRenderer()
	vp := viewport.New(5, 3)

	require.NoError(t, r.Present(testSource{"abcdefghij"}, vp, Frame{Intent: Full(), Status: "NORMAL 1:1"}))

	s := out.String()
	require.Contains(t, s, "abcde")
	require.NotContains(t, s, "abcdef")
	require.Contains(t, s, "NORMA")
	require.NotContains(t, s, "NORMAL")
}

func TestClip_ControlCharactersTakeOneCell(t *testing.T) {
	require.Equal(t, "a b c", clip("a\tb\x01c", 10))
	require.Equal(t, "a b", clip("a\tbcd", 3))
}

func TestClip_WideRunes(t *testing.T) {
	require.Equal(t, "日本", clip("日本語", 5))
}

func TestTerminal_SetupAndRestore(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out)

	require.NoError(t, term.Setup())
	s := out.String()
	require.Contains(t, s, ansi.SetAltScreenSaveCursorMode)
	require.Contains(t, s, ansi.SetNormalMouseMode)
	require.Contains(t, s, ansi.SetSgrExtMouseMode)

	out.Reset()
	require.NoError(t, term.Restore())
	s = out.String()
	require.Contains(t, s, ansi.ResetAltScreenSaveCursorMode)
	require.Contains(t, s, ansi.ResetNormalMouseMode)
}

func TestTerminal_BuffersUntilFlush(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out)

	term.WriteString("hello")
	require.Empty(t, out.String())
	require.NoError(t, term.Flush())
	require.Equal(t, "hello", out.String())
}
