package projects

import (
	"context"
	"strings"
	"time"

	"sylo/internal/config"
	"sylo/internal/domain/models/projects"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateTaskRequest represents a request to create a task inside ProjectID
type CreateTaskRequest struct {
	ProjectID   string                `json:"project_id" yaml:"-"`
	Title       string                `json:"title" yaml:"title"`
	Description string                `json:"description" yaml:"description"`
	Status      projects.TaskStatus   `json:"status" yaml:"status"`
	Priority    projects.TaskPriority `json:"priority" yaml:"priority"`
	AssignedTo  *string               `json:"assigned_to" yaml:"assigned_to"`
	Deadline    *string               `json:"deadline" yaml:"deadline"` // RFC 3339 or YYYY-MM-DD

	AIRiskScore               *float64 `json:"ai_risk_score" yaml:"ai_risk_score"`
	AIPriorityBoost           *float64 `json:"ai_priority_boost" yaml:"ai_priority_boost"`
	AIEstimatedCompletionTime *float64 `json:"ai_estimated_completion_time" yaml:"ai_estimated_completion_time"`
	AISchedulingNotes         *string  `json:"ai_scheduling_notes" yaml:"ai_scheduling_notes"`
}

func (r *CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ProjectID, validation.Required, is.UUID),
		validation.Field(&r.Title,
			validation.Required,
			validation.Length(1, config.MaxTaskTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&r.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&r.Status, validation.In(taskStatusValues(projects.TaskStatuses)...)),
		validation.Field(&r.Priority, validation.In(taskPriorityValues()...)),
		validation.Field(&r.AssignedTo, is.UUID),
		validation.Field(&r.Deadline, validation.By(deadlineFormat)),
		validation.Field(&r.AIRiskScore, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&r.AIEstimatedCompletionTime, validation.Min(0.0)),
		validation.Field(&r.AISchedulingNotes, validation.Length(0, config.MaxSchedulingNotesLength)),
	)
}

// ApplyDefaults fills in the status and priority defaults
func (r *CreateTaskRequest) ApplyDefaults() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Status == "" {
		r.Status = projects.TaskStatusTodo
	}
	if r.Priority == "" {
		r.Priority = projects.TaskPriorityMedium
	}
}

// OptionalString tracks tri-state semantics for nullable columns in a PATCH.
// Transport-agnostic; the handler maps it from httputil.OptionalString.
//   - Present=false: field absent (don't change)
//   - Present=true, Value=nil: clear to NULL
//   - Present=true, Value=&"x": set
type OptionalString struct {
	Present bool
	Value   *string
}

// UpdateTaskRequest represents a partial task update.
// There is no project field: a task cannot move between projects.
type UpdateTaskRequest struct {
	Title       *string
	Description *string
	Status      *projects.TaskStatus
	Priority    *projects.TaskPriority
	AssignedTo  OptionalString
	Deadline    OptionalString
}

func (r *UpdateTaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxTaskTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&r.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&r.Status, validation.In(taskStatusValues(projects.UpdatableTaskStatuses)...)),
		validation.Field(&r.Priority, validation.In(taskPriorityValues()...)),
		validation.Field(&r.AssignedTo, validation.By(func(value interface{}) error {
			opt, _ := value.(OptionalString)
			return validation.Validate(opt.Value, is.UUID)
		})),
		validation.Field(&r.Deadline, validation.By(func(value interface{}) error {
			opt, _ := value.(OptionalString)
			return deadlineFormat(opt.Value)
		})),
	)
}

// DeleteTaskResult echoes the task as it was before deletion
type DeleteTaskResult struct {
	Message     string         `json:"message"`
	DeletedTask *projects.Task `json:"deletedTask"`
}

// TaskService owns the task lifecycle. Every call re-checks project ownership.
type TaskService interface {
	// CreateTask inserts a task after verifying ownerID owns req.ProjectID
	CreateTask(ctx context.Context, req *CreateTaskRequest, ownerID string) (*projects.Task, error)

	// ListTasks retrieves all tasks of an owned project
	ListTasks(ctx context.Context, projectID, ownerID string) ([]projects.Task, error)

	// GetTask retrieves a task matching both id and projectID
	GetTask(ctx context.Context, id, projectID, ownerID string) (*projects.Task, error)

	// UpdateTask checks the task then applies a partial update
	UpdateTask(ctx context.Context, id, projectID, ownerID string, req *UpdateTaskRequest) (*projects.Task, error)

	// DeleteTask removes every edge touching the task, then the task row
	DeleteTask(ctx context.Context, id, projectID, ownerID string) (*DeleteTaskResult, error)
}

// ParseDeadline accepts RFC 3339 timestamps or plain dates
func ParseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

func taskStatusValues(statuses []projects.TaskStatus) []interface{} {
	values := make([]interface{}, len(statuses))
	for i, s := range statuses {
		values[i] = s
	}
	return values
}

func taskPriorityValues() []interface{} {
	values := make([]interface{}, len(projects.TaskPriorities))
	for i, p := range projects.TaskPriorities {
		values[i] = p
	}
	return values
}
