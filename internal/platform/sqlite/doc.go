// Package sqlite provides a SQLite implementation of store.TaskStore backed
// by mattn/go-sqlite3. Identifiers come from an AUTOINCREMENT column, so they
// are never reused, even after deletes.
//
// The schema ships as embedded goose migrations; apply them with the migrate
// package before using a TaskStore.
package sqlite
