package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store for a single subtest.
type Factory func(t *testing.T) store.TaskStore

// baseTime has no sub-microsecond part so it survives SQL round trips.
var baseTime = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

// NewTask builds an unstored task created at baseTime plus offset.
func NewTask(title string, offset time.Duration) domain.Task {
	at := baseTime.Add(offset)
	return domain.Task{
		Title:       title,
		Description: title + " description",
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

// AssertTaskEqual compares two tasks field by field, using time.Equal for
// the timestamps so that location differences do not matter.
func AssertTaskEqual(t *testing.T, expected, actual domain.Task) {
	t.Helper()
	assert.Equal(t, expected.ID, actual.ID, "id")
	assert.Equal(t, expected.Title, actual.Title, "title")
	assert.Equal(t, expected.Description, actual.Description, "description")
	assert.Equal(t, expected.Completed, actual.Completed, "completed")
	assert.True(t, expected.CreatedAt.Equal(actual.CreatedAt),
		"createdAt: expected %s, got %s", expected.CreatedAt, actual.CreatedAt)
	assert.True(t, expected.UpdatedAt.Equal(actual.UpdatedAt),
		"updatedAt: expected %s, got %s", expected.UpdatedAt, actual.UpdatedAt)
}

// RunTaskStoreContract runs the shared behavioural tests against stores
// produced by newStore.
func RunTaskStoreContract(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("empty store lists nothing", func(t *testing.T) {
		s := newStore(t)

		tasks, err := s.FindAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("insert assigns sequential ids starting at one", func(t *testing.T) {
		s := newStore(t)

		for want := int64(1); want <= 3; want++ {
			stored, err := s.Insert(ctx, NewTask("task", 0))
			require.NoError(t, err)
			assert.Equal(t, want, stored.ID)
		}
	})

	t.Run("find by id round trips", func(t *testing.T) {
		s := newStore(t)
		stored, err := s.Insert(ctx, NewTask("round trip", 0))
		require.NoError(t, err)

		found, ok, err := s.FindByID(ctx, stored.ID)

		require.NoError(t, err)
		require.True(t, ok)
		AssertTaskEqual(t, stored, found)
	})

	t.Run("find by unknown id reports absence", func(t *testing.T) {
		s := newStore(t)

		_, ok, err := s.FindByID(ctx, 42)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("replace overwrites mutable fields only", func(t *testing.T) {
		s := newStore(t)
		stored, err := s.Insert(ctx, NewTask("before", 0))
		require.NoError(t, err)

		changed := stored
		changed.ID = 999
		changed.Title = "after"
		changed.Description = ""
		changed.Completed = true
		changed.CreatedAt = baseTime.Add(time.Hour)
		changed.UpdatedAt = baseTime.Add(time.Minute)

		updated, ok, err := s.Replace(ctx, stored.ID, changed)
		require.NoError(t, err)
		require.True(t, ok)

		expected := stored
		expected.Title = "after"
		expected.Description = ""
		expected.Completed = true
		expected.UpdatedAt = baseTime.Add(time.Minute)
		AssertTaskEqual(t, expected, updated)

		found, ok, err := s.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		require.True(t, ok)
		AssertTaskEqual(t, expected, found)
	})

	t.Run("replace unknown id reports absence", func(t *testing.T) {
		s := newStore(t)

		_, ok, err := s.Replace(ctx, 7, NewTask("ghost", 0))

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove is permanent and idempotent", func(t *testing.T) {
		s := newStore(t)
		stored, err := s.Insert(ctx, NewTask("doomed", 0))
		require.NoError(t, err)

		require.NoError(t, s.Remove(ctx, stored.ID))
		_, ok, err := s.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, s.Remove(ctx, stored.ID), "second remove should be a no-op")
		assert.NoError(t, s.Remove(ctx, 12345), "removing an unknown id should be a no-op")
	})

	t.Run("find all keeps insertion order across deletes", func(t *testing.T) {
		s := newStore(t)
		var ids []int64
		for i, title := range []string{"a", "b", "c", "d"} {
			stored, err := s.Insert(ctx, NewTask(title, time.Duration(i)*time.Second))
			require.NoError(t, err)
			ids = append(ids, stored.ID)
		}

		require.NoError(t, s.Remove(ctx, ids[1]))

		tasks, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "a", tasks[0].Title)
		assert.Equal(t, "c", tasks[1].Title)
		assert.Equal(t, "d", tasks[2].Title)
	})

	t.Run("ids are never reused", func(t *testing.T) {
		s := newStore(t)
		first, err := s.Insert(ctx, NewTask("first", 0))
		require.NoError(t, err)
		second, err := s.Insert(ctx, NewTask("second", 0))
		require.NoError(t, err)

		require.NoError(t, s.Remove(ctx, second.ID))
		third, err := s.Insert(ctx, NewTask("third", 0))
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
		assert.Greater(t, third.ID, second.ID)
	})

	t.Run("explicit id is kept and advances the sequence", func(t *testing.T) {
		s := newStore(t)
		explicit := NewTask("explicit", 0)
		explicit.ID = 10

		stored, err := s.Insert(ctx, explicit)
		require.NoError(t, err)
		assert.Equal(t, int64(10), stored.ID)

		next, err := s.Insert(ctx, NewTask("next", 0))
		require.NoError(t, err)
		assert.Greater(t, next.ID, int64(10))

		_, err = s.Insert(ctx, explicit)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assertStoreError(t, err, "insert")
	})

	t.Run("insert rejects a blank title", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Insert(ctx, NewTask("   ", 0))

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assertStoreError(t, err, "insert")

		tasks, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("replace rejects updatedAt before createdAt", func(t *testing.T) {
		s := newStore(t)
		stored, err := s.Insert(ctx, NewTask("timely", time.Hour))
		require.NoError(t, err)

		changed := stored
		changed.UpdatedAt = baseTime

		_, _, err = s.Replace(ctx, stored.ID, changed)

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assertStoreError(t, err, "replace")

		found, ok, err := s.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		require.True(t, ok)
		AssertTaskEqual(t, stored, found)
	})
}

// assertStoreError checks that err is a task StoreError for operation.
func assertStoreError(t *testing.T, err error, operation string) {
	t.Helper()
	var storeErr *store.StoreError
	if assert.ErrorAs(t, err, &storeErr) {
		assert.Equal(t, "task", storeErr.Entity)
		assert.Equal(t, operation, storeErr.Operation)
	}
}
