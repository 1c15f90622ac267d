// Package paths provides path resolution utilities.
package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const appName = "modal"

// ConfigDir returns $XDG_CONFIG_HOME/modal, falling back to ~/.config/modal.
// Returns an empty string if neither can be determined.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns $XDG_DATA_HOME/modal, falling back to ~/.local/share/modal.
// Returns an empty string if neither can be determined.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// DefaultConfigPath returns the user config file location.
func DefaultConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// DefaultStatePath returns the location of the remembered positions database.
func DefaultStatePath() string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "state.db")
}

func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback, appName)
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths, including "~user/...", are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ResolveFile returns the canonical absolute path of the file to edit.
// Symlinks are followed when the file exists; a file that does not exist
// yet resolves to its absolute path.
//
//   - "notes.txt"            -> "/cwd/notes.txt"
//   - "link.txt" -> real.txt -> "/cwd/real.txt"
func ResolveFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	switch {
	case err == nil:
		return resolved, nil
	case errors.Is(err, fs.ErrNotExist):
		return abs, nil
	default:
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
}
