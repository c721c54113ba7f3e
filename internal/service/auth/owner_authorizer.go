package auth

import (
	"context"
	"errors"
	"fmt"

	"sylo/internal/domain"
	projectsRepo "sylo/internal/domain/repositories/projects"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// A user can access a resource if they own the project that contains it.
// Nothing is cached; every call reads the store.
type OwnerBasedAuthorizer struct {
	projectRepo projectsRepo.ProjectRepository
	taskRepo    projectsRepo.TaskRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	projectRepo projectsRepo.ProjectRepository,
	taskRepo projectsRepo.TaskRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// CanAccessProject checks if user owns the project
func (a *OwnerBasedAuthorizer) CanAccessProject(ctx context.Context, userID, projectID string) error {
	// GetByID already filters by user_id; not found means not owned
	_, err := a.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("access denied to project %s: %w", projectID, domain.ErrForbidden)
		}
		return fmt.Errorf("check project access: %w", err)
	}
	return nil
}

// CanAccessTask checks the project, then that the task lives in it
func (a *OwnerBasedAuthorizer) CanAccessTask(ctx context.Context, userID, projectID, taskID string) error {
	if err := a.CanAccessProject(ctx, userID, projectID); err != nil {
		return err
	}

	_, err := a.taskRepo.GetByID(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("access denied to task %s: %w", taskID, domain.ErrForbidden)
		}
		return fmt.Errorf("check task access: %w", err)
	}
	return nil
}
