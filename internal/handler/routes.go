package handler

import "net/http"

// Handlers groups the HTTP handlers registered by RegisterRoutes
type Handlers struct {
	Projects     *ProjectHandler
	Tasks        *TaskHandler
	Dependencies *DependencyHandler
	Insights     *InsightHandler
	Prompts      *PromptHandler
	Metrics      http.Handler
}

// RegisterRoutes registers every API route on mux (Go 1.22+ enhanced patterns)
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	mux.HandleFunc("GET /health", HealthCheck)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	// Project routes
	mux.HandleFunc("GET /api/projects", h.Projects.ListProjects)
	mux.HandleFunc("POST /api/projects", h.Projects.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", h.Projects.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", h.Projects.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", h.Projects.DeleteProject)
	mux.HandleFunc("GET /api/projects/{id}/access", h.Projects.CheckAccess)
	mux.HandleFunc("GET /api/projects/{id}/risk-assessment", h.Insights.GetRiskAssessment)
	mux.HandleFunc("GET /api/projects/{id}/status-suggestions", h.Insights.GetStatusSuggestions)

	// Task routes
	mux.HandleFunc("GET /api/projects/{id}/tasks", h.Tasks.ListTasks)
	mux.HandleFunc("POST /api/projects/{id}/tasks", h.Tasks.CreateTask)
	mux.HandleFunc("GET /api/projects/{id}/tasks/{taskId}", h.Tasks.GetTask)
	mux.HandleFunc("PATCH /api/projects/{id}/tasks/{taskId}", h.Tasks.UpdateTask)
	mux.HandleFunc("DELETE /api/projects/{id}/tasks/{taskId}", h.Tasks.DeleteTask)

	// Dependency routes
	mux.HandleFunc("GET /api/projects/{id}/tasks/{taskId}/dependencies", h.Dependencies.ListDependencies)
	mux.HandleFunc("POST /api/projects/{id}/tasks/{taskId}/dependencies", h.Dependencies.CreateDependency)
	mux.HandleFunc("DELETE /api/projects/{id}/tasks/{taskId}/dependencies/{dependsOnTaskId}", h.Dependencies.DeleteDependency)

	// Prompt library routes
	mux.HandleFunc("GET /api/prompts", h.Prompts.ListPrompts)
	mux.HandleFunc("POST /api/prompts", h.Prompts.CreatePrompt)
	mux.HandleFunc("GET /api/prompts/{id}", h.Prompts.GetPrompt)
	mux.HandleFunc("PATCH /api/prompts/{id}", h.Prompts.UpdatePrompt)
	mux.HandleFunc("DELETE /api/prompts/{id}", h.Prompts.DeletePrompt)
}
