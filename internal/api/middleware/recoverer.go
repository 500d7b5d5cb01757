package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// Recoverer turns a handler panic into a 500 INTERNAL_ERROR envelope and
// logs the panic value with its stack. http.ErrAbortHandler is re-raised.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
				"path", r.URL.Path,
				"method", r.Method)

			shared.RespondWithError(w, r, http.StatusInternalServerError,
				api.CodeInternalError, api.GetSafeErrorMessage(nil), nil)
		}()

		next.ServeHTTP(w, r)
	})
}
