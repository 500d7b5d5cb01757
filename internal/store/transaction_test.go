package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCounterDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE counters (name TEXT PRIMARY KEY, value INTEGER NOT NULL)`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM counters`).Scan(&n))
	return n
}

func TestRunInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := openCounterDB(t)

		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO counters (name, value) VALUES ('a', 1)`)
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, 1, countRows(t, db))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := openCounterDB(t)
		sentinel := errors.New("boom")

		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `INSERT INTO counters (name, value) VALUES ('a', 1)`); err != nil {
				return err
			}
			return sentinel
		})

		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 0, countRows(t, db))
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		db := openCounterDB(t)

		assert.Panics(t, func() {
			_ = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
				_, _ = tx.ExecContext(ctx, `INSERT INTO counters (name, value) VALUES ('a', 1)`)
				panic("unexpected")
			})
		})
		assert.Equal(t, 0, countRows(t, db))
	})
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")
	err := store.NewStoreError("task", "insert", "failed to write row", cause)

	assert.Equal(t, "insert operation on task failed: failed to write row: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := store.NewStoreError("task", "remove", "no connection", nil)
	assert.Equal(t, "remove operation on task failed: no connection", bare.Error())
}
