package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"sylo/internal/domain"
	"sylo/internal/httputil"
)

// handleError writes err as a problem response. Server-side failures
// (store errors, ErrUpdateFailed, ErrDeleteInconsistency) are logged with
// the request; their details never reach the client.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := httputil.RespondError(w, r, err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}
}

// validationError wraps a request validation failure as domain.ErrValidation
func validationError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// requireUser returns the authenticated user id, writing a 401 if there is none
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := httputil.UserID(r)
	if !ok {
		httputil.RespondProblem(w, r, http.StatusUnauthorized, "missing user")
		return "", false
	}
	return userID, true
}
