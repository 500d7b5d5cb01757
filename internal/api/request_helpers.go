package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// taskIDParam is the chi path parameter holding the task id.
const taskIDParam = "id"

// getPathTaskID parses the task id path parameter. Anything other than a
// positive base-10 integer yields an error matching service.ErrTaskNotFound.
func getPathTaskID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, taskIDParam)
	if !isDigits(raw) {
		return 0, &invalidTaskIDError{raw: raw}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &invalidTaskIDError{raw: raw}
	}
	return id, nil
}

// isDigits reports whether s is non-empty and made only of ASCII digits.
// strconv.ParseInt alone would also accept a sign.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
