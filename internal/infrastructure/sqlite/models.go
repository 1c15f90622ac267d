package sqlite

import (
	"time"

	"github.com/zjrosen/modal/internal/positions"
)

// positionModel is a row of the positions table. Times are Unix seconds.
type positionModel struct {
	Path      string
	Row       int
	Col       int
	SessionID string
	CreatedAt int64
	UpdatedAt int64
}

func toPositionModel(p positions.Position) positionModel {
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return positionModel{
		Path:      p.Path,
		Row:       p.Row,
		Col:       p.Col,
		SessionID: p.SessionID,
		CreatedAt: updated.Unix(),
		UpdatedAt: updated.Unix(),
	}
}

func (m positionModel) toDomain() positions.Position {
	return positions.Position{
		Path:      m.Path,
		Row:       m.Row,
		Col:       m.Col,
		SessionID: m.SessionID,
		UpdatedAt: time.Unix(m.UpdatedAt, 0),
	}
}
