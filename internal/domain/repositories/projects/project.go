package projects

import (
	"context"

	"sylo/internal/domain/models/projects"
)

// ProjectRepository defines data access operations for the projects table.
// Every method filters by owner so a foreign project is indistinguishable from a missing one.
type ProjectRepository interface {
	// Create inserts a project and fills in its generated ID and timestamps
	Create(ctx context.Context, project *projects.Project) error

	// GetByID retrieves a project by ID and owner.
	// Returns domain.ErrNotFound if no row matches both.
	GetByID(ctx context.Context, id, userID string) (*projects.Project, error)

	// List retrieves all projects for a user
	List(ctx context.Context, userID string) ([]projects.Project, error)

	// Update applies a partial update and returns the stored row.
	// Returns domain.ErrUpdateFailed if no row matched.
	Update(ctx context.Context, id, userID string, patch *projects.ProjectPatch) (*projects.Project, error)

	// Delete removes the project row.
	// Returns domain.ErrDeleteInconsistency if no row matched.
	Delete(ctx context.Context, id, userID string) error
}
