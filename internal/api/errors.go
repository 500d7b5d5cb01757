package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// Error codes written in the errorCode field of the error envelope.
const (
	CodeTaskNotFound     = "TASK_NOT_FOUND"
	CodeInvalidTaskData  = "INVALID_TASK_DATA"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// ErrInvalidRequestBody is returned when a request body cannot be decoded.
var ErrInvalidRequestBody = errors.New("invalid request body")

// invalidTaskIDError reports a path id that cannot name any task.
// It matches service.ErrTaskNotFound.
type invalidTaskIDError struct {
	raw string
}

func (e *invalidTaskIDError) Error() string {
	return fmt.Sprintf("task id %q is not a positive integer", e.raw)
}

func (e *invalidTaskIDError) Is(target error) bool {
	return target == service.ErrTaskNotFound
}

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidTaskData),
		errors.Is(err, ErrInvalidRequestBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToErrorCode maps internal errors to envelope error codes.
func MapErrorToErrorCode(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusNotFound:
		return CodeTaskNotFound
	case http.StatusBadRequest:
		return CodeInvalidTaskData
	default:
		return CodeInternalError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
// Unexpected errors get a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		notFound       *service.TaskNotFoundError
		badID          *invalidTaskIDError
		domainErr      *domain.ValidationError
		validationErrs validator.ValidationErrors
	)

	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("Task with id %d not found", notFound.TaskID)

	case errors.As(err, &badID):
		return fmt.Sprintf("Task with id %s not found", badID.raw)

	case errors.As(err, &domainErr):
		return fmt.Sprintf("Invalid task data: %s", domainErr.Error())

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.Is(err, ErrInvalidRequestBody):
		return "Invalid request body"

	case errors.Is(err, service.ErrInvalidTaskData):
		return "Invalid task data"

	default:
		return "An unexpected error occurred"
	}
}

// ErrorDetails returns the details object for err, or nil when the error
// carries nothing a client can act on.
func ErrorDetails(err error) map[string]any {
	var (
		notFound       *service.TaskNotFoundError
		badID          *invalidTaskIDError
		domainErr      *domain.ValidationError
		validationErrs validator.ValidationErrors
	)

	switch {
	case errors.As(err, &notFound):
		return map[string]any{"taskId": notFound.TaskID}

	case errors.As(err, &badID):
		return map[string]any{"taskId": badID.raw}

	case errors.As(err, &domainErr):
		return map[string]any{"field": domainErr.Field}

	case errors.As(err, &validationErrs) && len(validationErrs) > 0:
		return map[string]any{
			"field": validationErrs[0].Field(),
			"rule":  validationErrs[0].Tag(),
		}

	default:
		return nil
	}
}

// SanitizeValidationError turns validator output into a short message naming
// the first failing field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
