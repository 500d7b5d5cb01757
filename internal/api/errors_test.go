package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMapping(t *testing.T) {
	validationErr := domain.ValidationError{Field: "title", Message: "cannot be empty", Err: domain.ErrEmptyTitle}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
		wantDetail map[string]any
	}{
		{
			name:       "task not found",
			err:        &service.TaskNotFoundError{TaskID: 9},
			wantStatus: http.StatusNotFound,
			wantCode:   CodeTaskNotFound,
			wantMsg:    "Task with id 9 not found",
			wantDetail: map[string]any{"taskId": int64(9)},
		},
		{
			name:       "non-numeric path id",
			err:        &invalidTaskIDError{raw: "abc"},
			wantStatus: http.StatusNotFound,
			wantCode:   CodeTaskNotFound,
			wantMsg:    "Task with id abc not found",
			wantDetail: map[string]any{"taskId": "abc"},
		},
		{
			name:       "invalid task data",
			err:        fmt.Errorf("%w: %w", service.ErrInvalidTaskData, &validationErr),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidTaskData,
			wantMsg:    "Invalid task data: title cannot be empty",
			wantDetail: map[string]any{"field": "title"},
		},
		{
			name:       "malformed body",
			err:        fmt.Errorf("%w: %w", ErrInvalidRequestBody, errors.New("unexpected EOF")),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidTaskData,
			wantMsg:    "Invalid request body",
		},
		{
			name: "store failure",
			err: &service.TaskServiceError{
				Operation: "get_task",
				Message:   "failed to get task",
				Err:       errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternalError,
			wantMsg:    "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantCode, MapErrorToErrorCode(tt.err))
			assert.Equal(t, tt.wantMsg, GetSafeErrorMessage(tt.err))
			assert.Equal(t, tt.wantDetail, ErrorDetails(tt.err))
		})
	}
}

func TestValidatorErrorMapping(t *testing.T) {
	err := shared.ValidateRequest(CreateTaskRequest{})
	require.Error(t, err)

	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))
	assert.Equal(t, CodeInvalidTaskData, MapErrorToErrorCode(err))
	assert.Equal(t, "Invalid title: required field", GetSafeErrorMessage(err))
	assert.Equal(t, map[string]any{"field": "title", "rule": "required"}, ErrorDetails(err))
}

func TestGetSafeErrorMessage_Nil(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
