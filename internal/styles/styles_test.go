package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, ApplyTheme(ThemeConfig{}))
	})
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, lipgloss.Color(DefaultNormal), NormalColor)
	require.Equal(t, lipgloss.Color(DefaultInsert), InsertColor)
	require.Equal(t, lipgloss.Color(DefaultCommand), CommandColor)
	require.Equal(t, lipgloss.Color(DefaultForeground), ForegroundColor)
}

func TestApplyTheme_Override(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Insert: "#00FF00", Foreground: "#fff"}))

	require.Equal(t, lipgloss.Color("#00FF00"), InsertColor)
	require.Equal(t, lipgloss.Color("#fff"), ForegroundColor)
	require.Equal(t, lipgloss.Color(DefaultNormal), NormalColor)
	require.Equal(t, lipgloss.Color("#00FF00"), InsertStatusStyle.GetBackground())
	require.Equal(t, lipgloss.Color("#fff"), NormalStatusStyle.GetForeground())
}

func TestApplyTheme_InvalidColorChangesNothing(t *testing.T) {
	resetTheme(t)
	err := ApplyTheme(ThemeConfig{Normal: "#123456", Command: "red"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "command")
	require.Equal(t, lipgloss.Color(DefaultNormal), NormalColor)
}

func TestIsValidHexColor(t *testing.T) {
	for _, s := range []string{"#000", "#91ACD1", "#abcdef"} {
		require.True(t, IsValidHexColor(s), s)
	}
	for _, s := range []string{"", "000000", "#12", "#1234", "#GGGGGG"} {
		require.False(t, IsValidHexColor(s), s)
	}
}
