package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/tasks-api/internal/store"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// Dialect is the goose dialect for this backend.
const Dialect = "sqlite3"

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"

// Migrations holds the goose migrations for the tasks schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Open opens the database at dsn (a file path or "file:" URI).
// SQLite allows a single writer, so the pool is limited to one connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return db, nil
}

// MapError maps a SQLite error to the matching store error.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}

	return err
}

// storeError wraps a failed task operation in a store.StoreError, mapping
// constraint violations to store sentinels first.
func storeError(operation, message string, err error) error {
	return store.NewStoreError("task", operation, message, MapError(err))
}
