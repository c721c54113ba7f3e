package projects

import "time"

// TaskDependency is a directed edge: TaskID depends on DependsOnTaskID.
// At most one edge exists per ordered pair. Self-edges and cycles are not rejected.
type TaskDependency struct {
	ID              string    `json:"id" db:"id"`
	TaskID          string    `json:"task_id" db:"task_id"`
	DependsOnTaskID string    `json:"depends_on_task_id" db:"depends_on_task_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
