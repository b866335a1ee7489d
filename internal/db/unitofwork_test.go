package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*db.SQLiteUnitOfWork, func(id string) bool) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	exists := func(id string) bool {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM projects WHERE id = ?`, id).Scan(&n))
		return n == 1
	}
	return db.NewSQLiteUnitOfWork(database), exists
}

func insertProject(ctx context.Context, tx db.DBTX, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := tx.ExecContext(ctx, `INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`, id, id, now, now)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, exists := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertProject(ctx, tx, "p1"); err != nil {
			return err
		}
		return insertProject(ctx, tx, "p2")
	})
	require.NoError(t, err)

	assert.True(t, exists("p1"))
	assert.True(t, exists("p2"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, exists := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertProject(ctx, tx, "p1"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.False(t, exists("p1"), "partial batch must not persist")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, exists := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertProject(ctx, tx, "p1")
			panic("boom")
		})
	})

	assert.False(t, exists("p1"), "row should not exist after panic rollback")
}
