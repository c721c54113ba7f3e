package handler

import (
	"net/http"

	"sylo/internal/httputil"
)

// HealthCheck handles health check requests
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
