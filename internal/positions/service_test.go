package positions

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memRepo struct {
	rows    map[string]Position
	finds   int
	findErr error
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]Position)}
}

func (r *memRepo) Find(path string) (Position, error) {
	r.finds++
	if r.findErr != nil {
		return Position{}, r.findErr
	}
	p, ok := r.rows[path]
	if !ok {
		return Position{}, ErrNotFound
	}
	return p, nil
}

func (r *memRepo) Save(p Position) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.rows[p.Path] = p
	return nil
}

func (r *memRepo) Delete(path string) error {
	delete(r.rows, path)
	return nil
}

func (r *memRepo) Prune(keep int) (int, error) {
	all := make([]Position, 0, len(r.rows))
	for _, p := range r.rows {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })
	removed := 0
	for _, p := range all[min(keep, len(all)):] {
		delete(r.rows, p.Path)
		removed++
	}
	return removed, nil
}

func TestService_LookupMissing(t *testing.T) {
	s := NewService(newMemRepo(), "session")

	_, ok := s.Lookup(context.Background(), "/a.txt")
	require.False(t, ok)
}

func TestService_RecordThenLookup(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo, "session-1")
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Record(context.Background(), "/a.txt", 12, 3))

	p, ok := s.Lookup(context.Background(), "/a.txt")
	require.True(t, ok)
	require.Equal(t, Position{Path: "/a.txt", Row: 12, Col: 3, SessionID: "session-1", UpdatedAt: fixed}, p)
	require.Equal(t, 0, repo.finds, "recorded position should be served from cache")
	require.Equal(t, p, repo.rows["/a.txt"])
}

func TestService_LookupCachesRepositoryHits(t *testing.T) {
	repo := newMemRepo()
	repo.rows["/b.txt"] = Position{Path: "/b.txt", Row: 4}
	s := NewService(repo, "session")

	for i := 0; i < 3; i++ {
		p, ok := s.Lookup(context.Background(), "/b.txt")
		require.True(t, ok)
		require.Equal(t, 4, p.Row)
	}
	require.Equal(t, 1, repo.finds)
}

func TestService_LookupErrorIsSwallowed(t *testing.T) {
	repo := newMemRepo()
	repo.findErr = errors.New("disk gone")
	s := NewService(repo, "session")

	_, ok := s.Lookup(context.Background(), "/a.txt")
	require.False(t, ok)
}

func TestService_RecordClampsNegative(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo, "session")

	require.NoError(t, s.Record(context.Background(), "/a.txt", -1, -5))
	require.Equal(t, 0, repo.rows["/a.txt"].Row)
	require.Equal(t, 0, repo.rows["/a.txt"].Col)
}

func TestService_RecordError(t *testing.T) {
	repo := newMemRepo()
	repo.saveErr = errors.New("read-only")
	s := NewService(repo, "session")

	require.Error(t, s.Record(context.Background(), "/a.txt", 1, 1))

	_, ok := s.Lookup(context.Background(), "/a.txt")
	require.False(t, ok, "failed record must not be cached")
}

func TestService_Prune(t *testing.T) {
	repo := newMemRepo()
	base := time.Now()
	for i := 0; i < MaxEntries+5; i++ {
		path := "/f" + time.Duration(i).String()
		repo.rows[path] = Position{Path: path, UpdatedAt: base.Add(time.Duration(i) * time.Second)}
	}
	s := NewService(repo, "session")

	require.NoError(t, s.Prune())
	require.Len(t, repo.rows, MaxEntries)
}
