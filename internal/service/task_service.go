package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides task-related operations.
type TaskService interface {
	// CreateTask validates the title and stores a new, incomplete task.
	CreateTask(ctx context.Context, title, description string) (domain.Task, error)

	// GetAllTasks returns every stored task in creation order.
	GetAllTasks(ctx context.Context) ([]domain.Task, error)

	// GetTaskByID returns the task with the given id or a TaskNotFoundError.
	GetTaskByID(ctx context.Context, id int64) (domain.Task, error)

	// UpdateTask applies the supplied fields of update to an existing task.
	UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate) (domain.Task, error)

	// DeleteTask removes an existing task.
	DeleteTask(ctx context.Context, id int64) error
}

// Option configures a TaskService.
type Option func(*taskServiceImpl)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *taskServiceImpl) {
		s.now = now
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store  store.TaskStore
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a new TaskService backed by taskStore.
// It returns an error if taskStore is nil.
func NewTaskService(
	taskStore store.TaskStore,
	logger *slog.Logger,
	opts ...Option,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "new_task_service",
			Message:   "task store cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		store:  taskStore,
		logger: logger.With(slog.String("component", "task_service")),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	title, description string,
) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description, s.now())
	if err != nil {
		log.Debug("rejected task creation", slog.String("error", err.Error()))
		return domain.Task{}, invalidTaskData(err)
	}

	created, err := s.store.Insert(ctx, task)
	if err != nil {
		log.Error("failed to store task", slog.String("error", err.Error()))
		return domain.Task{}, NewTaskServiceError("create_task", "failed to store task", err)
	}

	log.Info("task created", slog.Int64("task_id", created.ID))
	return created, nil
}

// GetAllTasks implements TaskService.GetAllTasks
func (s *taskServiceImpl) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.FindAll(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_all_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetTaskByID implements TaskService.GetTaskByID
func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id int64) (domain.Task, error) {
	task, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return domain.Task{}, NewTaskServiceError("get_task", "failed to get task", err)
	}
	if !found {
		return domain.Task{}, &TaskNotFoundError{TaskID: id}
	}
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	update domain.TaskUpdate,
) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.Int64("task_id", id))

	existing, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if update.IsEmpty() {
		log.Debug("update carries no fields, refreshing updatedAt only")
	}

	updated, err := existing.Apply(update, s.now())
	if err != nil {
		log.Debug("rejected task update", slog.String("error", err.Error()))
		return domain.Task{}, invalidTaskData(err)
	}

	stored, found, err := s.store.Replace(ctx, id, updated)
	if err != nil {
		log.Error("failed to replace task", slog.String("error", err.Error()))
		return domain.Task{}, NewTaskServiceError("update_task", "failed to update task", err)
	}
	if !found {
		// Removed between the lookup and the replace.
		return domain.Task{}, &TaskNotFoundError{TaskID: id}
	}

	log.Info("task updated")
	return stored, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.Int64("task_id", id))

	if _, err := s.GetTaskByID(ctx, id); err != nil {
		return err
	}

	if err := s.store.Remove(ctx, id); err != nil {
		log.Error("failed to remove task", slog.String("error", err.Error()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted")
	return nil
}
