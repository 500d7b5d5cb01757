package sqlite_test

import (
	"context"
	"testing"

	"github.com/phrazzld/tasks-api/internal/platform/migrate"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/phrazzld/tasks-api/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMigratedStore(t *testing.T) *sqlite.TaskStore {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = migrate.Up(ctx, db, migrate.Source{
		Dialect: sqlite.Dialect,
		FS:      sqlite.Migrations,
		Dir:     sqlite.MigrationsDir,
	}, nil)
	require.NoError(t, err)

	return sqlite.NewTaskStore(db, nil)
}

func TestTaskStore_Contract(t *testing.T) {
	storetest.RunTaskStoreContract(t, func(t *testing.T) store.TaskStore {
		return newMigratedStore(t)
	})
}

func TestNewTaskStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { sqlite.NewTaskStore(nil, nil) })
}
