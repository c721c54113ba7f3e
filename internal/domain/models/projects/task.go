package projects

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusBlocked    TaskStatus = "blocked"
)

// TaskStatuses lists the statuses accepted when creating a task
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusReview,
	TaskStatusCompleted,
	TaskStatusBlocked,
}

// UpdatableTaskStatuses lists the statuses accepted when patching a task.
// "blocked" can only be set at creation time.
var UpdatableTaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusReview,
	TaskStatusCompleted,
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityUrgent,
}

// Task belongs to exactly one project; ProjectID never changes after creation
type Task struct {
	ID          string       `json:"id" db:"id"`
	ProjectID   string       `json:"project_id" db:"project_id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Status      TaskStatus   `json:"status" db:"status"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	AssignedTo  *string      `json:"assigned_to" db:"assigned_to"`
	Deadline    *time.Time   `json:"deadline" db:"deadline"`

	// AI planning hints, all optional
	AIRiskScore               *float64 `json:"ai_risk_score,omitempty" db:"ai_risk_score"`
	AIPriorityBoost           *float64 `json:"ai_priority_boost,omitempty" db:"ai_priority_boost"`
	AIEstimatedCompletionTime *float64 `json:"ai_estimated_completion_time,omitempty" db:"ai_estimated_completion_time"`
	AISchedulingNotes         *string  `json:"ai_scheduling_notes,omitempty" db:"ai_scheduling_notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TaskPatch carries a partial task update.
// For the nullable columns, Set* marks the field as present so it can be cleared to NULL.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority

	SetAssignedTo bool
	AssignedTo    *string

	SetDeadline bool
	Deadline    *time.Time

	UpdatedAt time.Time
}

// Apply copies the present patch fields onto t
func (p *TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.SetAssignedTo {
		t.AssignedTo = p.AssignedTo
	}
	if p.SetDeadline {
		t.Deadline = p.Deadline
	}
	t.UpdatedAt = p.UpdatedAt
}

// Apply copies the present patch fields onto project
func (p *ProjectPatch) Apply(project *Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.Status != nil {
		project.Status = *p.Status
	}
	project.UpdatedAt = p.UpdatedAt
}
