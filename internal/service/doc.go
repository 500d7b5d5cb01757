// Package service contains the application use cases for tasks. It sits
// between the HTTP handlers and the store: it validates input, stamps
// timestamps, turns absent records into ErrTaskNotFound, and delegates
// persistence to a store.TaskStore.
//
// Error handling:
//   - ErrInvalidTaskData wraps a *domain.ValidationError naming the field.
//   - ErrTaskNotFound is matched by *TaskNotFoundError, which carries the id.
//   - Unexpected store failures are wrapped in *TaskServiceError.
//
// The api package maps these to HTTP responses with errors.Is and errors.As.
package service
