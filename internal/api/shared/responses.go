package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// ErrorResponse is the envelope written for every non-2xx response.
// Details is serialized as null when absent.
type ErrorResponse struct {
	ErrorCode string         `json:"errorCode"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes an error envelope with the given status code.
func RespondWithError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	code, message string,
	details map[string]any,
) {
	logger.FromContext(r.Context()).Debug("sending error response",
		"status_code", status,
		"error_code", code,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		ErrorCode: code,
		Message:   message,
		Details:   details,
	})
}

// RespondWithErrorAndLog writes an error envelope and logs the underlying
// error. The client only ever sees code, message and details; err is
// redacted and goes to the log.
//
// 5xx responses are logged at ERROR level, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	code, message string,
	details map[string]any,
	err error,
) {
	logAttrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_code", code),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		ErrorCode: code,
		Message:   message,
		Details:   details,
	})
}
