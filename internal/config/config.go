// Package config provides configuration types and defaults for modal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/modal/internal/log"
	"github.com/zjrosen/modal/internal/paths"
	"github.com/zjrosen/modal/internal/styles"
)

// Config holds all configuration options for modal.
type Config struct {
	Theme   ThemeConfig   `mapstructure:"theme"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Watch   WatchConfig   `mapstructure:"watch"`
	State   StateConfig   `mapstructure:"state"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// ThemeConfig holds the status line colours, one per mode.
type ThemeConfig struct {
	Normal     string `mapstructure:"normal"`
	Insert     string `mapstructure:"insert"`
	Command    string `mapstructure:"command"`
	Foreground string `mapstructure:"foreground"`
}

// Styles converts the theme into the form the styles package applies.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{
		Normal:     t.Normal,
		Insert:     t.Insert,
		Command:    t.Command,
		Foreground: t.Foreground,
	}
}

// EditorConfig holds editing behaviour options.
type EditorConfig struct {
	// RememberCursor restores the last cursor position when a file is reopened.
	RememberCursor bool `mapstructure:"remember_cursor"`
}

// WatchConfig controls the external modification watcher.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// StateConfig locates the database of remembered cursor positions.
type StateConfig struct {
	Path string `mapstructure:"path"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/modal/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling, greater than 0 and at most 1.
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns an empty string if no config directory can be determined.
func DefaultTracesFilePath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// ExpandPaths expands a leading "~" in the configured file locations.
func ExpandPaths(c *Config) error {
	for _, p := range []*string{&c.State.Path, &c.Tracing.FilePath} {
		expanded, err := paths.ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme: ThemeConfig{
			Normal:     styles.DefaultNormal,
			Insert:     styles.DefaultInsert,
			Command:    styles.DefaultCommand,
			Foreground: styles.DefaultForeground,
		},
		Editor: EditorConfig{
			RememberCursor: true,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
		State: StateConfig{
			Path: paths.DefaultStatePath(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidateWatch(c.Watch); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTheme checks that every non-empty colour is a hex colour.
func ValidateTheme(theme ThemeConfig) error {
	fields := []struct{ name, value string }{
		{"normal", theme.Normal},
		{"insert", theme.Insert},
		{"command", theme.Command},
		{"foreground", theme.Foreground},
	}
	for _, f := range fields {
		if f.value != "" && !styles.IsValidHexColor(f.value) {
			return fmt.Errorf("theme.%s must be a hex color like \"#91ACD1\", got %q", f.name, f.value)
		}
	}
	return nil
}

// ValidateWatch checks watcher configuration for errors.
func ValidateWatch(watch WatchConfig) error {
	if watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", watch.Debounce)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate <= 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be greater than 0.0 and at most 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Path requirements only matter when tracing is on.
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Modal Configuration

# Status line colours per mode
theme:
  normal: "` + styles.DefaultNormal + `"
  insert: "` + styles.DefaultInsert + `"
  command: "` + styles.DefaultCommand + `"
  foreground: "` + styles.DefaultForeground + `"

editor:
  remember_cursor: true   # Reopen files at the last cursor position

# Report when another program changes the file being edited
watch:
  enabled: true
  debounce: 200ms

# Where remembered cursor positions are stored. A leading ~ is your home
# directory.
# state:
#   path: ~/.local/share/modal/state.db

# Tracing of processed events and saves
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/modal/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate, above 0 and up to 1 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. An existing file is left untouched.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file %s already exists", configPath)
	}

	if err := writeAtomic(configPath, []byte(DefaultConfigTemplate())); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return err
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
