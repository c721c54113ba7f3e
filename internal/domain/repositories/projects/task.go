package projects

import (
	"context"

	"sylo/internal/domain/models/projects"
)

// TaskRepository defines data access operations for the tasks table
type TaskRepository interface {
	// Create inserts a task and fills in its generated ID and timestamps
	Create(ctx context.Context, task *projects.Task) error

	// GetByID retrieves a task matching both id and projectID.
	// Returns domain.ErrNotFound otherwise, so a task from another project is never returned.
	GetByID(ctx context.Context, id, projectID string) (*projects.Task, error)

	// ListByProject retrieves every task in a project
	ListByProject(ctx context.Context, projectID string) ([]projects.Task, error)

	// ListIDsByProject retrieves only the ids of a project's tasks
	ListIDsByProject(ctx context.Context, projectID string) ([]string, error)

	// ListByIDs retrieves the tasks with the given ids; unknown ids are skipped
	ListByIDs(ctx context.Context, ids []string) ([]projects.Task, error)

	// Update applies a partial update and returns the stored row.
	// Returns domain.ErrUpdateFailed if no row matched.
	Update(ctx context.Context, id, projectID string, patch *projects.TaskPatch) (*projects.Task, error)

	// Delete removes a single task row.
	// Returns domain.ErrDeleteInconsistency if no row matched.
	Delete(ctx context.Context, id, projectID string) error

	// DeleteByProject removes every task in a project
	DeleteByProject(ctx context.Context, projectID string) error
}
