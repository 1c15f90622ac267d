package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/modal/internal/positions"
)

// positionRepository implements positions.Repository using SQLite.
type positionRepository struct {
	db *sql.DB
}

func newPositionRepository(db *sql.DB) *positionRepository {
	return &positionRepository{db: db}
}

var _ positions.Repository = (*positionRepository)(nil)

// Find retrieves the position stored for path.
func (r *positionRepository) Find(path string) (positions.Position, error) {
	var m positionModel
	err := r.db.QueryRow(
		`SELECT path, cursor_row, cursor_col, session_id, created_at, updated_at
		 FROM positions WHERE path = ?`,
		path,
	).Scan(&m.Path, &m.Row, &m.Col, &m.SessionID, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return positions.Position{}, positions.ErrNotFound
	}
	if err != nil {
		return positions.Position{}, fmt.Errorf("failed to find position: %w", err)
	}
	return m.toDomain(), nil
}

// Save inserts a position or updates the existing row for the same path,
// keeping its original created_at.
func (r *positionRepository) Save(p positions.Position) error {
	m := toPositionModel(p)
	_, err := r.db.Exec(
		`INSERT INTO positions (path, cursor_row, cursor_col, session_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (path) DO UPDATE SET
			cursor_row = excluded.cursor_row,
			cursor_col = excluded.cursor_col,
			session_id = excluded.session_id,
			updated_at = excluded.updated_at`,
		m.Path, m.Row, m.Col, m.SessionID, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	return nil
}

// Delete removes the position for path.
func (r *positionRepository) Delete(path string) error {
	if _, err := r.db.Exec(`DELETE FROM positions WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

// Prune keeps the keep most recently updated rows.
func (r *positionRepository) Prune(keep int) (int, error) {
	result, err := r.db.Exec(
		`DELETE FROM positions WHERE path NOT IN (
			SELECT path FROM positions ORDER BY updated_at DESC, path LIMIT ?
		)`,
		max(keep, 0),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune positions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}
