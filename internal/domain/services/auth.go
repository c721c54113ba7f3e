package services

import "context"

// ResourceAuthorizer checks if a user can access resources.
// The current implementation is ownership-based (user owns project).
type ResourceAuthorizer interface {
	// CanAccessProject checks if user can access a project
	CanAccessProject(ctx context.Context, userID, projectID string) error

	// CanAccessTask checks if user can access a task through its project
	CanAccessTask(ctx context.Context, userID, projectID, taskID string) error
}
