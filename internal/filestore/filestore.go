// Package filestore reads and writes the edited file as a whole.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrNotRegular is returned when the path names a directory or device.
var ErrNotRegular = errors.New("not a regular file")

// Store is the file store used by the editor.
type Store struct{}

// New creates a Store.
func New() *Store {
	return &Store{}
}

// Read returns the whole file content.
func (s *Store) Read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("reading %s: %w", path, ErrNotRegular)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the file the user asked to edit
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces the file with text atomically: the content goes to a temp
// file in the same directory which is then renamed over the target. An
// existing file keeps its permissions; symlinks are written through.
func (s *Store) Write(path, text string) error {
	target := path
	perm := fs.FileMode(0644)

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	if info, err := os.Stat(target); err == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("writing %s: %w", path, ErrNotRegular)
		}
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	dir := filepath.Dir(target)
	temp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.WriteString(text); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Chmod(perm); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, target); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// DiffSummary compares text against the file at path line by line.
// A missing file counts as empty.
func (s *Store) DiffSummary(path, text string) (string, error) {
	disk, err := s.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	stats := Diff(disk, text)
	if stats.Added == 0 && stats.Removed == 0 {
		return "No changes against disk", nil
	}
	return fmt.Sprintf("%d line(s) added, %d line(s) removed against disk", stats.Added, stats.Removed), nil
}

// Stats counts changed lines.
type Stats struct {
	Added   int
	Removed int
}

// Diff returns how many lines were added and removed going from before to
// after. A single trailing newline on either side is ignored.
func Diff(before, after string) Stats {
	before = normalize(before)
	after = normalize(after)
	if before == after {
		return Stats{}
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var stats Stats
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			stats.Added += n
		case diffmatchpatch.DiffDelete:
			stats.Removed += n
		}
	}
	return stats
}

// normalize terminates every line with a bare '\n' so that line counts are
// exact and CRLF files compare equal to their loaded buffer.
func normalize(s string) string {
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}
