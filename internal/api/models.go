package api

import (
	"github.com/phrazzld/tasks-api/internal/domain"
)

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}. Omitted fields are left
// unchanged; a null field counts as omitted.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ToUpdate converts the request into a domain.TaskUpdate.
func (r UpdateTaskRequest) ToUpdate() domain.TaskUpdate {
	return domain.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// MessageResponse is a single-message JSON body.
type MessageResponse struct {
	Message string `json:"message"`
}
