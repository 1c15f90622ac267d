// Package positions remembers where the cursor was when a file was last left.
package positions

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no position is stored for a path.
var ErrNotFound = errors.New("position not found")

// Position is the cursor location recorded for one file.
type Position struct {
	Path      string
	Row       int
	Col       int
	SessionID string
	UpdatedAt time.Time
}

// Repository persists positions keyed by absolute path.
type Repository interface {
	// Find returns the position for path or ErrNotFound.
	Find(path string) (Position, error)
	// Save inserts or replaces the position for p.Path.
	Save(p Position) error
	// Delete forgets the position for path. Deleting a missing path is not an error.
	Delete(path string) error
	// Prune keeps the keep most recently updated positions and returns how
	// many were removed.
	Prune(keep int) (int, error)
}
