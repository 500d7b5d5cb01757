// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It handles connection setup through the pgx stdlib driver, query execution,
// mapping of PostgreSQL errors to store errors, and ships the goose
// migrations for its schema.
package postgres
