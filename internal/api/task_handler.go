package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// RegisterRoutes mounts the task endpoints on r.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{"+taskIDParam+"}", h.GetTask)
		r.Put("/{"+taskIDParam+"}", h.UpdateTask)
		r.Delete("/{"+taskIDParam+"}", h.DeleteTask)
	})
}

// ListTasks handles GET /tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.GetAllTasks(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	task, err := h.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		h.respondWithServiceError(w, r, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.Description)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	// Every field is optional, so an empty body is an empty update.
	var req UpdateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		h.respondWithServiceError(w, r, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Root handles GET / requests
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task Management API"})
}

// NotFound writes the envelope for requests that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, CodeNotFound,
		fmt.Sprintf("No route for %s", r.URL.Path), nil)
}

// MethodNotAllowed writes the envelope for a known path with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed,
		fmt.Sprintf("Method %s not allowed", r.Method), nil)
}

// respondWithServiceError maps err onto the error envelope and logs it.
func (h *TaskHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	r = r.WithContext(logger.WithLogger(r.Context(), log))

	shared.RespondWithErrorAndLog(
		w,
		r,
		MapErrorToStatusCode(err),
		MapErrorToErrorCode(err),
		GetSafeErrorMessage(err),
		ErrorDetails(err),
		err,
	)
}
