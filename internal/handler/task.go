package handler

import (
	"log/slog"
	"net/http"

	"sylo/internal/domain/models/projects"
	projectsSvc "sylo/internal/domain/services/projects"
	"sylo/internal/httputil"
)

// TaskHandler handles task HTTP requests
type TaskHandler struct {
	taskService projectsSvc.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService projectsSvc.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// updateTaskBody is the PATCH payload; nullable columns use OptionalString
type updateTaskBody struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Status      *projects.TaskStatus    `json:"status"`
	Priority    *projects.TaskPriority  `json:"priority"`
	AssignedTo  httputil.OptionalString `json:"assigned_to"`
	Deadline    httputil.OptionalString `json:"deadline"`
}

func (b *updateTaskBody) toRequest() *projectsSvc.UpdateTaskRequest {
	return &projectsSvc.UpdateTaskRequest{
		Title:       b.Title,
		Description: b.Description,
		Status:      b.Status,
		Priority:    b.Priority,
		AssignedTo:  projectsSvc.OptionalString{Present: b.AssignedTo.Present, Value: b.AssignedTo.Value},
		Deadline:    projectsSvc.OptionalString{Present: b.Deadline.Present, Value: b.Deadline.Value},
	}
}

// CreateTask creates a task in the project
// POST /api/projects/{id}/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	var req projectsSvc.CreateTaskRequest
	if !httputil.ParseJSON(w, r, &req) {
		return
	}
	// The path wins over any project_id in the body
	req.ProjectID = ids[0]
	if err := req.Validate(); err != nil {
		handleError(w, r, h.logger, validationError(err))
		return
	}
	req.ApplyDefaults()

	task, err := h.taskService.CreateTask(r.Context(), &req, userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, task)
}

// ListTasks lists the project's tasks
// GET /api/projects/{id}/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tasks)
}

// GetTask retrieves a task
// GET /api/projects/{id}/tasks/{taskId}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id", "taskId")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), ids[1], ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// UpdateTask applies a partial update
// PATCH /api/projects/{id}/tasks/{taskId}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id", "taskId")
	if !ok {
		return
	}

	var body updateTaskBody
	if !httputil.ParseJSON(w, r, &body) {
		return
	}
	req := body.toRequest()
	if err := req.Validate(); err != nil {
		handleError(w, r, h.logger, validationError(err))
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), ids[1], ids[0], userID, req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task and every dependency touching it
// DELETE /api/projects/{id}/tasks/{taskId}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ids, ok := httputil.PathUUIDs(w, r, "id", "taskId")
	if !ok {
		return
	}

	result, err := h.taskService.DeleteTask(r.Context(), ids[1], ids[0], userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
