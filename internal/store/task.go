package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// A TaskStore holds no business rules. Absence is reported through the found
// flag, never as an error; errors are reserved for infrastructure failures.
// All methods exchange domain.Task values, so callers never share state with
// the store.
type TaskStore interface {
	// Insert records task and returns the stored value. When task.ID is zero a
	// fresh identifier is assigned; identifiers start at 1 and strictly
	// increase per store. Inserting an identifier that is already present
	// returns ErrDuplicate.
	Insert(ctx context.Context, task domain.Task) (domain.Task, error)

	// FindAll returns every stored task in insertion order.
	// Returns an empty, non-nil slice when the store is empty.
	FindAll(ctx context.Context) ([]domain.Task, error)

	// FindByID returns the task stored under id. found is false when no such
	// task exists.
	FindByID(ctx context.Context, id int64) (task domain.Task, found bool, err error)

	// Replace overwrites the mutable fields (title, description, completed,
	// updatedAt) of the task stored under id. The stored ID and CreatedAt are
	// preserved. found is false when no such task exists.
	Replace(ctx context.Context, id int64, task domain.Task) (updated domain.Task, found bool, err error)

	// Remove deletes the task stored under id. Removing an unknown id is a no-op.
	Remove(ctx context.Context, id int64) error
}
