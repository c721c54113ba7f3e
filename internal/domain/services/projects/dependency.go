package projects

import (
	"context"

	"sylo/internal/domain/models/projects"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateDependencyRequest asks for TaskID to depend on DependsOnTaskID
type CreateDependencyRequest struct {
	TaskID          string `json:"task_id"`
	DependsOnTaskID string `json:"depends_on_task_id"`
}

func (r *CreateDependencyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TaskID, validation.Required, is.UUID),
		validation.Field(&r.DependsOnTaskID, validation.Required, is.UUID),
	)
}

// DeleteDependencyResult is returned whether or not an edge was actually removed
type DeleteDependencyResult struct {
	Message string `json:"message"`
}

// DependencyService owns the directed edge set between tasks of one project.
// Both endpoints must belong to projectID, which must be owned by ownerID.
type DependencyService interface {
	// CreateDependency returns the existing edge for the pair if there is one, otherwise inserts it
	CreateDependency(ctx context.Context, taskID, dependsOnTaskID, projectID, ownerID string) (*projects.TaskDependency, error)

	// ListDependencies returns the prerequisite tasks of taskID (not the edge rows)
	ListDependencies(ctx context.Context, taskID, projectID, ownerID string) ([]projects.Task, error)

	// DeleteDependency removes the edge for the exact ordered pair
	DeleteDependency(ctx context.Context, taskID, dependsOnTaskID, projectID, ownerID string) (*DeleteDependencyResult, error)
}
