package handler

import (
	"log/slog"
	"net/http"

	projectsSvc "sylo/internal/domain/services/projects"
	"sylo/internal/httputil"
)

// DependencyHandler handles task dependency HTTP requests
type DependencyHandler struct {
	dependencyService projectsSvc.DependencyService
	logger            *slog.Logger
}

// NewDependencyHandler creates a new dependency handler
func NewDependencyHandler(dependencyService projectsSvc.DependencyService, logger *slog.Logger) *DependencyHandler {
	return &DependencyHandler{
		dependencyService: dependencyService,
		logger:            logger,
	}
}

type createDependencyBody struct {
	DependsOnTaskID string `json:"depends_on_task_id"`
}

// CreateDependency makes the path task depend on depends_on_task_id.
// Repeating the call returns the existing edge with 201 as well.
// POST /api/projects/{id}/tasks/{taskId}/dependencies
func (h *DependencyHandler) CreateDependency(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id", "taskId")
	if !ok {
		return
	}

	var body createDependencyBody
	if !httputil.ParseJSON(w, r, &body) {
		return
	}
	req := projectsSvc.CreateDependencyRequest{TaskID: ids[1], DependsOnTaskID: body.DependsOnTaskID}
	if err := req.Validate(); err != nil {
		handleError(w, r, h.logger, validationError(err))
		return
	}

	dep, err := h.dependencyService.CreateDependency(r.Context(), req.TaskID, req.DependsOnTaskID, ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, dep)
}

// ListDependencies lists the tasks the path task depends on
// GET /api/projects/{id}/tasks/{taskId}/dependencies
func (h *DependencyHandler) ListDependencies(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id", "taskId")
	if !ok {
		return
	}

	tasks, err := h.dependencyService.ListDependencies(r.Context(), ids[1], ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tasks)
}

// DeleteDependency removes one edge
// DELETE /api/projects/{id}/tasks/{taskId}/dependencies/{dependsOnTaskId}
func (h *DependencyHandler) DeleteDependency(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id", "taskId", "dependsOnTaskId")
	if !ok {
		return
	}

	result, err := h.dependencyService.DeleteDependency(r.Context(), ids[1], ids[2], ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
