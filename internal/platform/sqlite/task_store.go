package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const taskColumns = `id, title, description, completed, created_at, updated_at`

// TaskStore implements store.TaskStore using SQLite.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore on db. If logger is nil, the default
// logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_task_store")),
	}
}

// Insert implements store.TaskStore.Insert. An explicit ID advances the
// AUTOINCREMENT sequence automatically.
func (s *TaskStore) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	task = normalize(task)

	var id any
	if task.ID != 0 {
		id = task.ID
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		log.Warn("failed to insert task", slog.String("error", err.Error()))
		return domain.Task{}, storeError("insert", "failed to insert task", err)
	}

	if task.ID == 0 {
		task.ID, err = result.LastInsertId()
		if err != nil {
			return domain.Task{}, storeError("insert", "failed to read inserted id", err)
		}
	}

	log.Debug("task inserted", slog.Int64("task_id", task.ID))
	return task, nil
}

// FindAll implements store.TaskStore.FindAll.
func (s *TaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, storeError("find", "failed to query tasks", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storeError("find", "failed to scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("find", "failed to iterate tasks", err)
	}
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID.
func (s *TaskStore) FindByID(ctx context.Context, id int64) (domain.Task, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, false, nil
	}
	if err != nil {
		return domain.Task{}, false, storeError("find", "failed to get task", err)
	}
	return task, true, nil
}

// Replace implements store.TaskStore.Replace.
func (s *TaskStore) Replace(ctx context.Context, id int64, task domain.Task) (domain.Task, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	task = normalize(task)

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?, updated_at = ?
		WHERE id = ?`,
		task.Title, task.Description, task.Completed, task.UpdatedAt, id,
	)
	if err != nil {
		log.Error("failed to replace task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return domain.Task{}, false, storeError("replace", "failed to update task", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return domain.Task{}, false, storeError("replace", "failed to get rows affected", err)
	}
	if n == 0 {
		return domain.Task{}, false, nil
	}

	return s.FindByID(ctx, id)
}

// Remove implements store.TaskStore.Remove.
func (s *TaskStore) Remove(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return storeError("remove", "failed to delete task", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return domain.Task{}, err
	}
	return normalize(task), nil
}

func normalize(task domain.Task) domain.Task {
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return task
}
