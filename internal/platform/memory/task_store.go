package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// firstID is the identifier assigned to the first task of every store.
const firstID int64 = 1

// TaskStore implements store.TaskStore with an in-memory map.
// All access to the map, the insertion order and the id counter is
// serialized by mu, so identifiers stay unique under concurrent inserts.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]domain.Task
	order  []int64
	nextID int64
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty store whose first assigned identifier is 1.
// If logger is nil, the default logger is used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		tasks:  make(map[int64]domain.Task),
		nextID: firstID,
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// Insert implements store.TaskStore.Insert.
func (s *TaskStore) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return domain.Task{}, invalidEntity("insert", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == 0 {
		task.ID = s.nextID
	} else if _, exists := s.tasks[task.ID]; exists {
		return domain.Task{}, store.NewStoreError("task", "insert", "id already in use",
			fmt.Errorf("%w: task %d", store.ErrDuplicate, task.ID))
	}
	if task.ID >= s.nextID {
		s.nextID = task.ID + 1
	}

	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)

	log.Debug("task inserted", slog.Int64("task_id", task.ID))
	return task, nil
}

// FindAll implements store.TaskStore.FindAll.
func (s *TaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID.
func (s *TaskStore) FindByID(ctx context.Context, id int64) (domain.Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	return task, ok, nil
}

// Replace implements store.TaskStore.Replace.
func (s *TaskStore) Replace(ctx context.Context, id int64, task domain.Task) (domain.Task, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[id]
	if !ok {
		log.Debug("replace skipped, task not present", slog.Int64("task_id", id))
		return domain.Task{}, false, nil
	}

	existing.Title = task.Title
	existing.Description = task.Description
	existing.Completed = task.Completed
	existing.UpdatedAt = task.UpdatedAt
	if err := existing.Validate(); err != nil {
		return domain.Task{}, false, invalidEntity("replace", err)
	}
	s.tasks[id] = existing

	return existing, true, nil
}

// Remove implements store.TaskStore.Remove.
func (s *TaskStore) Remove(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return nil
	}

	delete(s.tasks, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}

	log.Debug("task removed", slog.Int64("task_id", id))
	return nil
}

// invalidEntity reports a task the store refuses to hold, mirroring the
// CHECK constraints of the SQL backends.
func invalidEntity(operation string, err error) error {
	return store.NewStoreError("task", operation, "task violates store constraints",
		fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
}
