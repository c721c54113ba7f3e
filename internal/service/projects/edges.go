package projects

import (
	"context"

	projectsRepo "sylo/internal/domain/repositories/projects"
)

// edgeCleaner removes every edge that mentions a task, in either direction.
// Shared by the task and project delete cascades.
type edgeCleaner struct {
	depRepo projectsRepo.TaskDependencyRepository
}

// deleteAllEdgesForTask removes edges where taskID is the dependent, then where it is the prerequisite
func (c edgeCleaner) deleteAllEdgesForTask(ctx context.Context, taskID string) error {
	if err := c.depRepo.DeleteByTask(ctx, taskID); err != nil {
		return err
	}
	return c.depRepo.DeleteByDependsOn(ctx, taskID)
}

// deleteAllEdgesForProjectTasks is the set form of deleteAllEdgesForTask. An empty set is a no-op.
func (c edgeCleaner) deleteAllEdgesForProjectTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	if err := c.depRepo.DeleteByTasks(ctx, taskIDs); err != nil {
		return err
	}
	return c.depRepo.DeleteByDependsOnTasks(ctx, taskIDs)
}
