// Package migrate runs the embedded goose migrations of a SQL task store
// and bridges goose's output into slog.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// Supported migration commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// TableName is the goose version table used by every backend.
const TableName = "schema_migrations"

// Source describes where a backend keeps its migrations.
type Source struct {
	Dialect string // goose dialect, e.g. "postgres" or "sqlite3"
	FS      fs.FS
	Dir     string
}

// goose keeps its configuration in package globals, so runs are serialized.
var mu sync.Mutex

// IsCommand reports whether command is one of the supported commands.
func IsCommand(command string) bool {
	switch command {
	case CommandUp, CommandDown, CommandStatus, CommandVersion:
		return true
	default:
		return false
	}
}

// Up applies every pending migration from src to db.
func Up(ctx context.Context, db *sql.DB, src Source, logger *slog.Logger) error {
	return Run(ctx, db, src, CommandUp, logger)
}

// Run executes a goose command against db using the migrations in src.
func Run(ctx context.Context, db *sql.DB, src Source, command string, logger *slog.Logger) error {
	if !IsCommand(command) {
		return fmt.Errorf("unsupported migration command %q", command)
	}
	if logger == nil {
		logger = slog.Default()
	}

	log := logger.With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
		"dialect", src.Dialect,
	)

	mu.Lock()
	defer mu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(src.FS)
	defer goose.SetBaseFS(nil)
	goose.SetTableName(TableName)

	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("failed to set dialect %s: %w", src.Dialect, err)
	}

	start := time.Now()
	log.Info("Starting migration operation", "operation", fmt.Sprintf("goose %s", command))

	if err := goose.RunContext(ctx, command, db, src.Dir); err != nil {
		log.Error("Migration operation failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("Migration operation completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// slogGooseLogger implements goose.Logger on top of slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level without exiting; the error is returned to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
