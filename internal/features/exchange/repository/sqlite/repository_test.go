package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secret-santa-backend/internal/features/exchange/models"
	"secret-santa-backend/internal/features/exchange/repository"
	platformsqlite "secret-santa-backend/internal/platform/sqlite"
)

func openTempRepository(t *testing.T) repository.AssignmentRepository {
	t.Helper()
	db, err := platformsqlite.Open(context.Background(), filepath.Join(t.TempDir(), "assignments.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db)
}

var drawnAt = time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC)

func ring(ids ...string) []models.Assignment {
	out := make([]models.Assignment, len(ids))
	for i, id := range ids {
		out[i] = models.Assignment{GiverID: id, ReceiverID: ids[(i+1)%len(ids)]}
	}
	return out
}

func TestReplaceAndList(t *testing.T) {
	repo := openTempRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "x", ring("c", "a", "b"), drawnAt))

	records, err := repo.List(ctx, "x")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, models.AssignmentRecord{
		ID:             "a",
		UserID:         "a",
		GiftExchangeID: "x",
		TargetUserID:   "b",
		DrawnAt:        drawnAt,
	}, records[0])
}

func TestReplaceDropsPreviousSet(t *testing.T) {
	repo := openTempRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "x", ring("a", "b", "c", "d"), drawnAt))
	require.NoError(t, repo.Replace(ctx, "x", ring("b", "a"), drawnAt))

	records, err := repo.List(ctx, "x")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].UserID)
	assert.Equal(t, "b", records[1].UserID)
}

func TestReplaceRollsBackOnConstraintViolation(t *testing.T) {
	repo := openTempRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "x", ring("a", "b", "c"), drawnAt))

	// two givers sharing a receiver violates the unique index
	bad := []models.Assignment{
		{GiverID: "a", ReceiverID: "c"},
		{GiverID: "b", ReceiverID: "c"},
	}
	assert.Error(t, repo.Replace(ctx, "x", bad, drawnAt.Add(time.Hour)))

	records, err := repo.List(ctx, "x")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.True(t, drawnAt.Equal(r.DrawnAt))
	}
}

func TestClearAndListExchanges(t *testing.T) {
	repo := openTempRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "x", ring("a", "b"), drawnAt))
	require.NoError(t, repo.Replace(ctx, "y", ring("a", "b", "c"), drawnAt))

	summaries, err := repo.ListExchanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ExchangeSummary{{ID: "x", AssignmentsCount: 2}, {ID: "y", AssignmentsCount: 3}}, summaries)

	n, err := repo.Clear(ctx, "y")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.Clear(ctx, "y")
	require.NoError(t, err)
	assert.Zero(t, n)

	summaries, err = repo.ListExchanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ExchangeSummary{{ID: "x", AssignmentsCount: 2}}, summaries)
}

func TestGetByGiver(t *testing.T) {
	repo := openTempRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "x", ring("a", "b", "c"), drawnAt))

	rec, err := repo.GetByGiver(ctx, "x", "c")
	require.NoError(t, err)
	assert.Equal(t, "a", rec.TargetUserID)

	_, err = repo.GetByGiver(ctx, "x", "z")
	assert.ErrorIs(t, err, repository.ErrAssignmentNotFound)
}
