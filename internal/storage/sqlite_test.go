package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func newTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")
	arch, err := NewSQLiteArchive(path, logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	t.Cleanup(func() { arch.Close() })
	return arch
}

func TestArchiveRoundTrip(t *testing.T) {
	arch := newTestArchive(t)
	ctx := context.Background()

	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := domain.ArchivedSession{
		ID:         "s1",
		RecipeName: "Baked Feta Pasta",
		StepCount:  6,
		StartedAt:  started,
		EndedAt:    started.Add(40 * time.Minute),
	}
	require.NoError(t, arch.Archive(ctx, rec))

	got, err := arch.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, rec.RecipeName, got[0].RecipeName)
	assert.Equal(t, rec.StepCount, got[0].StepCount)
	assert.True(t, rec.StartedAt.Equal(got[0].StartedAt))
	assert.True(t, rec.EndedAt.Equal(got[0].EndedAt))
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	arch := newTestArchive(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, arch.Archive(ctx, domain.ArchivedSession{
			ID:         id,
			RecipeName: "Stir Fry",
			StepCount:  4,
			StartedAt:  base,
			EndedAt:    base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := arch.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
}

func TestArchiveReplaceSameID(t *testing.T) {
	arch := newTestArchive(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := domain.ArchivedSession{ID: "s1", RecipeName: "Pasta", StepCount: 3, StartedAt: base, EndedAt: base}
	require.NoError(t, arch.Archive(ctx, rec))

	rec.StepCount = 5
	require.NoError(t, arch.Archive(ctx, rec))

	got, err := arch.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].StepCount)
}
