// Package styles contains Lip Gloss style definitions for the status line.
package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Default status-line colours, one background per editor mode.
const (
	DefaultNormal     = "#91ACD1"
	DefaultInsert     = "#C0CA8E"
	DefaultCommand    = "#E99090"
	DefaultForeground = "#000000"
)

var (
	NormalColor     lipgloss.Color = DefaultNormal
	InsertColor     lipgloss.Color = DefaultInsert
	CommandColor    lipgloss.Color = DefaultCommand
	ForegroundColor lipgloss.Color = DefaultForeground

	NormalStatusStyle  = statusStyle(NormalColor)
	InsertStatusStyle  = statusStyle(InsertColor)
	CommandStatusStyle = statusStyle(CommandColor)
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
// Empty fields keep the default colour.
type ThemeConfig struct {
	Normal     string
	Insert     string
	Command    string
	Foreground string
}

// ApplyTheme validates every colour in cfg, then applies them and rebuilds
// the status styles. On error nothing is changed.
func ApplyTheme(cfg ThemeConfig) error {
	colors := []struct {
		name  string
		value string
		def   string
		dst   *lipgloss.Color
	}{
		{"normal", cfg.Normal, DefaultNormal, &NormalColor},
		{"insert", cfg.Insert, DefaultInsert, &InsertColor},
		{"command", cfg.Command, DefaultCommand, &CommandColor},
		{"foreground", cfg.Foreground, DefaultForeground, &ForegroundColor},
	}

	for _, c := range colors {
		if c.value != "" && !IsValidHexColor(c.value) {
			return fmt.Errorf("invalid hex color for %s: %s", c.name, c.value)
		}
	}
	for _, c := range colors {
		value := c.value
		if value == "" {
			value = c.def
		}
		*c.dst = lipgloss.Color(value)
	}

	rebuildStyles()
	return nil
}

// rebuildStyles recreates the Style values.
// lipgloss.Style captures colours at creation time.
func rebuildStyles() {
	NormalStatusStyle = statusStyle(NormalColor)
	InsertStatusStyle = statusStyle(InsertColor)
	CommandStatusStyle = statusStyle(CommandColor)
}

func statusStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(ForegroundColor)
}

// IsValidHexColor reports whether s is a #RGB or #RRGGBB colour.
func IsValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
