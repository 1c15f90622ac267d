package testutil

import "time"

// positionData holds all data for a remembered position to be inserted.
type positionData struct {
	path      string
	row       int
	col       int
	sessionID string
	createdAt time.Time
	updatedAt time.Time
}

// defaultPosition returns a positionData at the top of the file.
func defaultPosition(path string) positionData {
	now := time.Now()
	return positionData{
		path:      path,
		sessionID: "test-session",
		createdAt: now,
		updatedAt: now,
	}
}

// PositionOption configures a position during builder setup.
type PositionOption func(*positionData)

// At sets the 0-based cursor row and column.
func At(row, col int) PositionOption {
	return func(p *positionData) {
		p.row = row
		p.col = col
	}
}

// Session sets the session that recorded the position.
func Session(id string) PositionOption {
	return func(p *positionData) { p.sessionID = id }
}

// CreatedAt sets the first time the file was recorded.
func CreatedAt(t time.Time) PositionOption {
	return func(p *positionData) { p.createdAt = t }
}

// UpdatedAt sets the last time the position changed.
func UpdatedAt(t time.Time) PositionOption {
	return func(p *positionData) { p.updatedAt = t }
}
