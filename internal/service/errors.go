package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by TaskService. Callers check them with errors.Is.
var (
	// ErrTaskNotFound indicates that no task exists with the requested id.
	// API layer maps this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTaskData indicates that the supplied task fields are invalid.
	// API layer maps this to HTTP 400 Bad Request.
	ErrInvalidTaskData = errors.New("invalid task data")
)

// TaskNotFoundError reports the id of a task that does not exist.
type TaskNotFoundError struct {
	TaskID int64
}

// Error implements the error interface for TaskNotFoundError.
func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task with id %d not found", e.TaskID)
}

// Is makes errors.Is(err, ErrTaskNotFound) true for any TaskNotFoundError.
func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Not-found and invalid-data errors are returned unchanged so callers can
// still match them.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrInvalidTaskData) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// invalidTaskData wraps a validation failure so it matches both
// ErrInvalidTaskData and the underlying domain error.
func invalidTaskData(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidTaskData, err)
}
