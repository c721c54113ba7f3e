package projects

import (
	"context"

	"sylo/internal/domain/models/projects"
)

// TaskDependencyRepository defines data access operations for the task_dependencies table.
// Delete methods never report "no rows matched" as an error.
type TaskDependencyRepository interface {
	// Create inserts an edge. Returns a domain.ConflictError if the ordered pair already exists.
	Create(ctx context.Context, dep *projects.TaskDependency) error

	// GetByPair retrieves the edge for the exact ordered pair.
	// Returns domain.ErrNotFound if there is none.
	GetByPair(ctx context.Context, taskID, dependsOnTaskID string) (*projects.TaskDependency, error)

	// ListByTask retrieves every edge whose dependent side is taskID
	ListByTask(ctx context.Context, taskID string) ([]projects.TaskDependency, error)

	// DeletePair removes the edge for the exact ordered pair
	DeletePair(ctx context.Context, taskID, dependsOnTaskID string) error

	// DeleteByTask removes edges where task_id = taskID
	DeleteByTask(ctx context.Context, taskID string) error

	// DeleteByDependsOn removes edges where depends_on_task_id = taskID
	DeleteByDependsOn(ctx context.Context, taskID string) error

	// DeleteByTasks removes edges where task_id is in taskIDs
	DeleteByTasks(ctx context.Context, taskIDs []string) error

	// DeleteByDependsOnTasks removes edges where depends_on_task_id is in taskIDs
	DeleteByDependsOnTasks(ctx context.Context, taskIDs []string) error
}
