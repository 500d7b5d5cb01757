package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/platform/migrate"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds the shared application dependencies and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the memory driver.
	db *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication opens the configured store, applies migrations when
// auto_migrate is set, and builds the service layer on top.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.db, app.taskStore, err = openTaskStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	if app.db != nil && cfg.Store.AutoMigrate {
		src, err := migrationSource(cfg.Store.Driver)
		if err != nil {
			app.cleanup()
			return nil, err
		}
		if err := migrate.Up(ctx, app.db, src, logger); err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized", "store_driver", cfg.Store.Driver)
	return app, nil
}

// openTaskStore returns the store for cfg.Driver. The returned *sql.DB is
// nil for the memory driver.
func openTaskStore(
	ctx context.Context,
	cfg config.StoreConfig,
	logger *slog.Logger,
) (*sql.DB, store.TaskStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return nil, memory.NewTaskStore(logger), nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return db, postgres.NewTaskStore(db, logger), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return db, sqlite.NewTaskStore(db, logger), nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// migrationSource returns the embedded migrations for a SQL driver.
func migrationSource(driver string) (migrate.Source, error) {
	switch driver {
	case config.DriverPostgres:
		return migrate.Source{
			Dialect: postgres.Dialect,
			FS:      postgres.Migrations,
			Dir:     postgres.MigrationsDir,
		}, nil
	case config.DriverSQLite:
		return migrate.Source{
			Dialect: sqlite.Dialect,
			FS:      sqlite.Migrations,
			Dir:     sqlite.MigrationsDir,
		}, nil
	default:
		return migrate.Source{}, fmt.Errorf("store driver %q has no migrations", driver)
	}
}

// runMigrations runs a goose command against the configured SQL store.
func runMigrations(ctx context.Context, cfg config.StoreConfig, command string, logger *slog.Logger) error {
	if !cfg.IsSQL() {
		return fmt.Errorf("migrate requires a SQL store driver, got %q", cfg.Driver)
	}

	src, err := migrationSource(cfg.Driver)
	if err != nil {
		return err
	}

	db, _, err := openTaskStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", "error", err)
		}
	}()

	return migrate.Run(ctx, db, src, command, logger)
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
		return
	}
	app.logger.Info("Database connection closed")
}
