package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
	projectsRepo "sylo/internal/domain/repositories/projects"
	projectsSvc "sylo/internal/domain/services/projects"
)

// dependencyService implements the DependencyService interface.
// There is no cycle detection: self-edges and cycles are stored as given.
type dependencyService struct {
	tasks    projectsSvc.TaskService
	taskRepo projectsRepo.TaskRepository
	depRepo  projectsRepo.TaskDependencyRepository
	logger   *slog.Logger
}

// NewDependencyService creates a new dependency service
func NewDependencyService(
	tasks projectsSvc.TaskService,
	taskRepo projectsRepo.TaskRepository,
	depRepo projectsRepo.TaskDependencyRepository,
	logger *slog.Logger,
) projectsSvc.DependencyService {
	return &dependencyService{
		tasks:    tasks,
		taskRepo: taskRepo,
		depRepo:  depRepo,
		logger:   logger,
	}
}

// CreateDependency records that taskID depends on dependsOnTaskID.
// An existing edge for the pair is returned unchanged.
func (s *dependencyService) CreateDependency(ctx context.Context, taskID, dependsOnTaskID, projectID, ownerID string) (*models.TaskDependency, error) {
	if err := s.checkEndpoints(ctx, taskID, dependsOnTaskID, projectID, ownerID); err != nil {
		return nil, err
	}

	existing, err := s.depRepo.GetByPair(ctx, taskID, dependsOnTaskID)
	if err == nil {
		s.logger.Debug("dependency already exists",
			"id", existing.ID,
			"task_id", taskID,
			"depends_on_task_id", dependsOnTaskID,
		)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	dep := &models.TaskDependency{
		TaskID:          taskID,
		DependsOnTaskID: dependsOnTaskID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.depRepo.Create(ctx, dep); err != nil {
		// A concurrent create won the unique constraint
		if errors.Is(err, domain.ErrConflict) {
			return s.depRepo.GetByPair(ctx, taskID, dependsOnTaskID)
		}
		return nil, err
	}

	s.logger.Info("dependency created",
		"id", dep.ID,
		"task_id", taskID,
		"depends_on_task_id", dependsOnTaskID,
		"project_id", projectID,
	)

	return dep, nil
}

// ListDependencies returns the tasks that taskID depends on
func (s *dependencyService) ListDependencies(ctx context.Context, taskID, projectID, ownerID string) ([]models.Task, error) {
	if _, err := s.tasks.GetTask(ctx, taskID, projectID, ownerID); err != nil {
		return nil, err
	}

	deps, err := s.depRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if len(deps) == 0 {
		return []models.Task{}, nil
	}

	ids := make([]string, len(deps))
	for i, d := range deps {
		ids[i] = d.DependsOnTaskID
	}
	return s.taskRepo.ListByIDs(ctx, ids)
}

// DeleteDependency removes the edge for the pair. A missing edge is not an error.
func (s *dependencyService) DeleteDependency(ctx context.Context, taskID, dependsOnTaskID, projectID, ownerID string) (*projectsSvc.DeleteDependencyResult, error) {
	if err := s.checkEndpoints(ctx, taskID, dependsOnTaskID, projectID, ownerID); err != nil {
		return nil, err
	}

	if err := s.depRepo.DeletePair(ctx, taskID, dependsOnTaskID); err != nil {
		return nil, err
	}

	s.logger.Info("dependency deleted",
		"task_id", taskID,
		"depends_on_task_id", dependsOnTaskID,
		"project_id", projectID,
	)

	return &projectsSvc.DeleteDependencyResult{
		Message: fmt.Sprintf("Dependency between task %q and %q successfully deleted.", taskID, dependsOnTaskID),
	}, nil
}

// checkEndpoints verifies both tasks exist in the owned project
func (s *dependencyService) checkEndpoints(ctx context.Context, taskID, dependsOnTaskID, projectID, ownerID string) error {
	if _, err := s.tasks.GetTask(ctx, taskID, projectID, ownerID); err != nil {
		return err
	}
	if _, err := s.tasks.GetTask(ctx, dependsOnTaskID, projectID, ownerID); err != nil {
		return err
	}
	return nil
}
