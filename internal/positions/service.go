package positions

import (
	"context"
	"errors"
	"time"

	"github.com/zjrosen/modal/internal/cachemanager"
	"github.com/zjrosen/modal/internal/log"
)

const (
	cacheTTL = 30 * time.Minute
	// MaxEntries bounds how many files are remembered.
	MaxEntries = 1000
)

// Service looks positions up through a read-through cache and records them
// in the repository.
type Service struct {
	repo      Repository
	cache     *cachemanager.ReadThroughCache[string, Position, string]
	sessionID string
	now       func() time.Time
}

// NewService creates a Service. sessionID tags every position this process records.
func NewService(repo Repository, sessionID string) *Service {
	manager := cachemanager.NewInMemoryCacheManager[string, Position](
		"positions", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval,
	)
	return &Service{
		repo: repo,
		cache: cachemanager.NewReadThroughCache[string, Position, string](
			manager,
			func(_ context.Context, path string) (Position, error) {
				return repo.Find(path)
			},
			false,
		),
		sessionID: sessionID,
		now:       time.Now,
	}
}

// Lookup returns the remembered position for path. ok is false when nothing
// is stored or the store failed; failures are logged, never surfaced.
func (s *Service) Lookup(ctx context.Context, path string) (Position, bool) {
	p, err := s.cache.GetWithRefresh(ctx, path, path, cacheTTL)
	if errors.Is(err, ErrNotFound) {
		return Position{}, false
	}
	if err != nil {
		log.ErrorErr(log.CatStore, "position lookup failed", err, "path", path)
		return Position{}, false
	}
	return p, true
}

// Record stores row and col as the position for path.
func (s *Service) Record(ctx context.Context, path string, row, col int) error {
	p := Position{
		Path:      path,
		Row:       max(row, 0),
		Col:       max(col, 0),
		SessionID: s.sessionID,
		UpdatedAt: s.now(),
	}
	if err := s.repo.Save(p); err != nil {
		return err
	}
	s.cache.Put(ctx, path, p, cacheTTL)
	log.Debug(log.CatStore, "position recorded", "path", path, "row", p.Row, "col", p.Col)
	return nil
}

// Prune trims the store to MaxEntries.
func (s *Service) Prune() error {
	n, err := s.repo.Prune(MaxEntries)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info(log.CatStore, "pruned positions", "removed", n)
	}
	return nil
}
