package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/alexanderramin/genba/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerRepo_CRUD(t *testing.T) {
	repo := NewSQLiteWorkerRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	w := testutil.NewTestWorker("Sato", testutil.WithKana("さとう"), testutil.WithBirthDate("1980-07-15"))
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sato", got.Name)
	assert.Equal(t, "さとう", got.NameKana)
	assert.Equal(t, "1980-07-15", domain.FormatOptionalDate(got.BirthDate))

	got.Name = "Sato Ken"
	got.BirthDate = nil
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sato Ken", again.Name)
	assert.Nil(t, again.BirthDate)

	require.NoError(t, repo.Delete(ctx, w.ID))
	_, err = repo.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkerRepo_UpdateLeavesOrder(t *testing.T) {
	repo := NewSQLiteWorkerRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	w := testutil.NewTestWorker("Tanaka", testutil.WithWorkerOrder(3))
	require.NoError(t, repo.Create(ctx, w))

	w.Order = nil
	w.Name = "Tanaka Yui"
	require.NoError(t, repo.Update(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Order)
	assert.Equal(t, 3, *got.Order)
}

func TestWorkerRepo_ListOrdering(t *testing.T) {
	repo := NewSQLiteWorkerRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestWorker("A")
	b := testutil.NewTestWorker("B", testutil.WithWorkerOrder(1))
	c := testutil.NewTestWorker("C", testutil.WithWorkerOrder(0))
	for _, w := range []*domain.Worker{a, b, c} {
		require.NoError(t, repo.Create(ctx, w))
	}
	require.NoError(t, repo.UpdateOrder(ctx, a.ID, 2))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{list[0].Name, list[1].Name, list[2].Name})
}
