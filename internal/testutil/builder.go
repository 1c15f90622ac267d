// Package testutil provides test data builders for the state database and
// buffer fixtures.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// Builder accumulates remembered positions and inserts them into a migrated
// state database.
type Builder struct {
	t         *testing.T
	db        *sql.DB
	positions []positionData
}

// NewBuilder creates a builder for the given test database.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithPosition adds a position for path with optional configuration.
func (b *Builder) WithPosition(path string, opts ...PositionOption) *Builder {
	p := defaultPosition(path)
	for _, opt := range opts {
		opt(&p)
	}
	b.positions = append(b.positions, p)
	return b
}

// Build inserts all accumulated data into the database.
func (b *Builder) Build() {
	b.t.Helper()
	for _, p := range b.positions {
		_, err := b.db.Exec(
			`INSERT INTO positions (path, cursor_row, cursor_col, session_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.path, p.row, p.col, p.sessionID, p.createdAt.Unix(), p.updatedAt.Unix(),
		)
		require.NoError(b.t, err, "insert position %s", p.path)
	}
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n)) //nolint:gosec // G202: table names come from tests
	return n
}
