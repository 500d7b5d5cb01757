package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

	task, err := NewTask("Write report", "quarterly numbers", now)

	require.NoError(t, err)
	assert.Zero(t, task.ID, "unstored task should have no ID")
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "quarterly numbers", task.Description)
	assert.False(t, task.Completed)
	assert.Equal(t, now, task.CreatedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestValidateTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{name: "simple", title: "A"},
		{name: "padded", title: "  padded  "},
		{name: "exactly max after trim", title: "  " + strings.Repeat("x", MaxTitleLength) + "  "},
		{name: "multibyte at max", title: strings.Repeat("é", MaxTitleLength)},
		{name: "empty", title: "", wantErr: ErrEmptyTitle},
		{name: "whitespace only", title: " \t\n ", wantErr: ErrEmptyTitle},
		{name: "too long", title: strings.Repeat("x", MaxTitleLength+1), wantErr: ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, "title", validationErr.Field)
		})
	}
}

func TestTaskApply(t *testing.T) {
	t.Parallel()
	created := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(time.Minute)
	base := Task{
		ID:          7,
		Title:       "original",
		Description: "desc",
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	t.Run("only completed", func(t *testing.T) {
		done := true
		updated, err := base.Apply(TaskUpdate{Completed: &done}, later)

		require.NoError(t, err)
		assert.Equal(t, int64(7), updated.ID)
		assert.Equal(t, "original", updated.Title)
		assert.Equal(t, "desc", updated.Description)
		assert.True(t, updated.Completed)
		assert.Equal(t, created, updated.CreatedAt)
		assert.Equal(t, later, updated.UpdatedAt)
		assert.False(t, base.Completed, "receiver must not be modified")
	})

	t.Run("clear description", func(t *testing.T) {
		empty := ""
		updated, err := base.Apply(TaskUpdate{Description: &empty}, later)

		require.NoError(t, err)
		assert.Equal(t, "", updated.Description)
	})

	t.Run("empty update still touches updatedAt", func(t *testing.T) {
		updated, err := base.Apply(TaskUpdate{}, later)

		require.NoError(t, err)
		assert.Equal(t, later, updated.UpdatedAt)
	})

	t.Run("invalid title", func(t *testing.T) {
		blank := "   "
		_, err := base.Apply(TaskUpdate{Title: &blank}, later)

		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("clock behind createdAt", func(t *testing.T) {
		updated, err := base.Apply(TaskUpdate{}, created.Add(-time.Hour))

		require.NoError(t, err)
		assert.Equal(t, created, updated.UpdatedAt)
		assert.NoError(t, updated.Validate())
	})
}

func TestTaskUpdateIsEmpty(t *testing.T) {
	t.Parallel()
	done := false

	assert.True(t, TaskUpdate{}.IsEmpty())
	assert.False(t, TaskUpdate{Completed: &done}.IsEmpty())
}

func TestTaskValidate(t *testing.T) {
	now := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)
	valid := Task{ID: 1, Title: "ok", CreatedAt: now, UpdatedAt: now}

	assert.NoError(t, valid.Validate())

	blank := valid
	blank.Title = " "
	assert.ErrorIs(t, blank.Validate(), ErrEmptyTitle)

	backwards := valid
	backwards.UpdatedAt = now.Add(-time.Second)
	var validationErr *ValidationError
	require.ErrorAs(t, backwards.Validate(), &validationErr)
	assert.Equal(t, "updatedAt", validationErr.Field)
}
