package handler

import (
	"log/slog"
	"net/http"

	projectsSvc "sylo/internal/domain/services/projects"
	"sylo/internal/httputil"
)

// InsightHandler serves read-only project health figures
type InsightHandler struct {
	insightService projectsSvc.InsightService
	logger         *slog.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightService projectsSvc.InsightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		logger:         logger,
	}
}

// GetRiskAssessment scores the project's overdue share
// GET /api/projects/{id}/risk-assessment
func (h *InsightHandler) GetRiskAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	assessment, err := h.insightService.AnalyzeProjectRisk(r.Context(), ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, assessment)
}

// GetStatusSuggestions lists overdue in-progress tasks
// GET /api/projects/{id}/status-suggestions
func (h *InsightHandler) GetStatusSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	suggestions, err := h.insightService.SuggestTaskStatusUpdates(r.Context(), ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, suggestions)
}
