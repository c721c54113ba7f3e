package handler

import (
	"log/slog"
	"net/http"

	"sylo/internal/domain/services"
	projectsSvc "sylo/internal/domain/services/projects"
	"sylo/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService projectsSvc.ProjectService
	authorizer     services.ResourceAuthorizer
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService projectsSvc.ProjectService, authorizer services.ResourceAuthorizer, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		authorizer:     authorizer,
		logger:         logger,
	}
}

// CreateProject creates a new project
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req projectsSvc.CreateProjectRequest
	if !httputil.ParseJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, h.logger, validationError(err))
		return
	}
	req.ApplyDefaults()

	project, err := h.projectService.CreateProject(r.Context(), &req, userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// ListProjects lists the caller's projects
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// GetProject retrieves a project
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(r.Context(), ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject applies a partial update
// PATCH /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	var req projectsSvc.UpdateProjectRequest
	if !httputil.ParseJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, r, h.logger, validationError(err))
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), ids[0], userID, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject deletes a project with its tasks and dependencies
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	result, err := h.projectService.DeleteProject(r.Context(), ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// CheckAccess reports whether the caller may access the project (403 otherwise)
// GET /api/projects/{id}/access
func (h *ProjectHandler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	if err := h.authorizer.CanAccessProject(r.Context(), userID, ids[0]); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"project_id": ids[0],
		"access":     true,
	})
}
