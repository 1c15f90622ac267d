package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/modal/internal/positions"
	"github.com/zjrosen/modal/internal/testutil"
)

func TestPositionRepository_FindMissing(t *testing.T) {
	repo := newTestDB(t).PositionRepository()

	_, err := repo.Find("/nope.txt")
	require.ErrorIs(t, err, positions.ErrNotFound)
}

func TestPositionRepository_SaveAndFind(t *testing.T) {
	repo := newTestDB(t).PositionRepository()
	at := time.Unix(1_700_000_000, 0)

	p := positions.Position{Path: "/a.txt", Row: 41, Col: 7, SessionID: "abc", UpdatedAt: at}
	require.NoError(t, repo.Save(p))

	got, err := repo.Find("/a.txt")
	require.NoError(t, err)
	require.Equal(t, "/a.txt", got.Path)
	require.Equal(t, 41, got.Row)
	require.Equal(t, 7, got.Col)
	require.Equal(t, "abc", got.SessionID)
	require.True(t, at.Equal(got.UpdatedAt))
}

func TestPositionRepository_SaveUpserts(t *testing.T) {
	db := newTestDB(t)
	repo := db.PositionRepository()

	require.NoError(t, repo.Save(positions.Position{Path: "/a.txt", Row: 1, SessionID: "one", UpdatedAt: time.Unix(100, 0)}))
	require.NoError(t, repo.Save(positions.Position{Path: "/a.txt", Row: 9, Col: 2, SessionID: "two", UpdatedAt: time.Unix(200, 0)}))

	got, err := repo.Find("/a.txt")
	require.NoError(t, err)
	require.Equal(t, 9, got.Row)
	require.Equal(t, "two", got.SessionID)

	var created int64
	require.NoError(t, db.conn.QueryRow("SELECT created_at FROM positions WHERE path = ?", "/a.txt").Scan(&created))
	require.Equal(t, int64(100), created)
}

func TestPositionRepository_RejectsNegative(t *testing.T) {
	repo := newTestDB(t).PositionRepository()

	require.Error(t, repo.Save(positions.Position{Path: "/a.txt", Row: -1, SessionID: "s"}))
}

func TestPositionRepository_Delete(t *testing.T) {
	repo := newTestDB(t).PositionRepository()
	require.NoError(t, repo.Save(positions.Position{Path: "/a.txt", SessionID: "s"}))

	require.NoError(t, repo.Delete("/a.txt"))
	require.NoError(t, repo.Delete("/a.txt"))

	_, err := repo.Find("/a.txt")
	require.ErrorIs(t, err, positions.ErrNotFound)
}

func TestPositionRepository_Prune(t *testing.T) {
	db := newTestDB(t)
	repo := db.PositionRepository()
	testutil.NewBuilder(t, db.Connection()).WithRecentFiles(5).Build()

	removed, err := repo.Prune(2)
	require.NoError(t, err)
	require.Equal(t, 3, removed)
	require.Equal(t, 2, testutil.CountRows(t, db.Connection(), "positions"))

	for i := 1; i <= 3; i++ {
		_, err := repo.Find(testutil.RecentFile(i))
		require.ErrorIs(t, err, positions.ErrNotFound)
	}
	for i := 4; i <= 5; i++ {
		_, err := repo.Find(testutil.RecentFile(i))
		require.NoError(t, err)
	}

	removed, err = repo.Prune(10)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestPositionService_OverSQLite(t *testing.T) {
	svc := positions.NewService(newTestDB(t).PositionRepository(), "session-1")

	_, ok := svc.Lookup(t.Context(), "/x.txt")
	require.False(t, ok)

	require.NoError(t, svc.Record(t.Context(), "/x.txt", 5, 2))
	got, ok := svc.Lookup(t.Context(), "/x.txt")
	require.True(t, ok)
	require.Equal(t, 5, got.Row)
	require.Equal(t, 2, got.Col)
}
