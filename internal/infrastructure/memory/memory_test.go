package memory

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	s := entity.NewTerminalSession(entity.Cashier{ID: 3, Username: "amina"}, "tok")

	require.NoError(t, repo.Save(ctx, s))
	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, repo.Delete(ctx, s.ID))
	got, err = repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, repo.Len())
}

func TestPrintJournalIsNewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	repo := NewPrintJobRepository(3)

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, repo.Create(ctx, &entity.PrintJob{OrderID: i, Channel: entity.PrintChannelThermal}))
	}

	jobs, total, err := repo.List(ctx, &pagination.PaginationParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, jobs, 2)
	assert.Equal(t, int64(5), jobs[0].OrderID)
	assert.Equal(t, int64(4), jobs[1].OrderID)
	assert.NotEqual(t, jobs[0].ID, jobs[1].ID)
	assert.False(t, jobs[0].CreatedAt.IsZero())
}

func TestIdempotencyKeysAreScopedPerCashier(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository()

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "abc", UserID: 1, ResponseCode: 201, ResponseBody: "{}",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute),
	}))

	got, err := repo.GetByKey(ctx, "abc", 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	got, err = repo.GetByKey(ctx, "abc", 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByKey(ctx, "old", 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.DeleteExpired(ctx))
	assert.Len(t, repo.keys, 1)
}
