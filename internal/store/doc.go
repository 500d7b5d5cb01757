// Package store defines the persistence contract for tasks. Implementations
// live under internal/platform and are selected at startup; the service layer
// depends only on the TaskStore interface.
package store
