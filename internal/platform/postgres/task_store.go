package postgres

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

// TaskStore implements store.TaskStore using PostgreSQL.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore on a connection pool or transaction
// managed by the caller. If logger is nil, the default logger is used.
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
		logger: logger.With(slog.String("component", "postgres_task_store")),
	}
}

// WithTx returns a TaskStore that runs every query inside tx.
func (s *TaskStore) WithTx(tx *sql.Tx) *TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}

// Insert implements store.TaskStore.Insert.
// A task with an explicit ID is inserted as-is and the id sequence is moved
// past it in the same transaction.
func (s *TaskStore) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	task = normalize(task)

	if task.ID == 0 {
		query := `
			INSERT INTO tasks (title, description, completed, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err := s.db.QueryRowContext(ctx, query,
			task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt,
		).Scan(&task.ID)
		if err != nil {
			log.Error("failed to insert task", slog.String("error", err.Error()))
			return domain.Task{}, storeError("insert", "failed to insert task", err)
		}
		log.Debug("task inserted", slog.Int64("task_id", task.ID))
		return task, nil
	}

	err := s.inTx(ctx, func(db store.DBTX) error {
		query := `
			INSERT INTO tasks (id, title, description, completed, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := db.ExecContext(ctx, query,
			task.ID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt,
		); err != nil {
			return MapError(err)
		}

		_, err := db.ExecContext(ctx,
			`SELECT setval(pg_get_serial_sequence('tasks', 'id'), (SELECT MAX(id) FROM tasks))`)
		return err
	})
	if err != nil {
		log.Warn("failed to insert task with explicit id",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return domain.Task{}, storeError("insert", "failed to insert task with explicit id", err)
	}

	log.Debug("task inserted with explicit id", slog.Int64("task_id", task.ID))
	return task, nil
}

// FindAll implements store.TaskStore.FindAll. Tasks are ordered by id,
// which matches insertion order for store-assigned ids.
func (s *TaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, storeError("find", "failed to query tasks", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task", slog.String("error", err.Error()))
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
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, false, nil
		}
		log.Error("failed to get task by id",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return domain.Task{}, false, storeError("find", "failed to get task", err)
	}

	return task, true, nil
}

// Replace implements store.TaskStore.Replace.
func (s *TaskStore) Replace(ctx context.Context, id int64, task domain.Task) (domain.Task, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	task = normalize(task)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, updated_at = $4
		WHERE id = $5
		RETURNING ` + taskColumns

	row := s.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Completed, task.UpdatedAt, id)
	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("replace skipped, task not present", slog.Int64("task_id", id))
			return domain.Task{}, false, nil
		}
		log.Error("failed to replace task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return domain.Task{}, false, storeError("replace", "failed to update task", err)
	}

	return updated, true, nil
}

// Remove implements store.TaskStore.Remove.
func (s *TaskStore) Remove(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to remove task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return storeError("remove", "failed to delete task", err)
	}

	if removed, err := rowsAffected(result); err == nil && removed {
		log.Debug("task removed", slog.Int64("task_id", id))
	}
	return nil
}

// inTx runs fn in a transaction when the store holds a pool, or directly on
// the caller's transaction otherwise.
func (s *TaskStore) inTx(ctx context.Context, fn func(db store.DBTX) error) error {
	pool, ok := s.db.(*sql.DB)
	if !ok {
		return fn(s.db)
	}
	return store.RunInTransaction(ctx, pool, func(ctx context.Context, tx *sql.Tx) error {
		return fn(tx)
	})
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

// normalize stores and returns timestamps in UTC.
func normalize(task domain.Task) domain.Task {
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return task
}
