package projects

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	models "sylo/internal/domain/models/projects"
	"sylo/internal/domain/repositories"
	projectsRepo "sylo/internal/domain/repositories/projects"
	projectsSvc "sylo/internal/domain/services/projects"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo projectsRepo.ProjectRepository
	taskRepo    projectsRepo.TaskRepository
	edges       edgeCleaner
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo projectsRepo.ProjectRepository,
	taskRepo projectsRepo.TaskRepository,
	depRepo projectsRepo.TaskDependencyRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) projectsSvc.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		edges:       edgeCleaner{depRepo: depRepo},
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateProject creates a new project owned by ownerID
func (s *projectService) CreateProject(ctx context.Context, req *projectsSvc.CreateProjectRequest, ownerID string) (*models.Project, error) {
	now := time.Now().UTC()
	project := &models.Project{
		UserID:      ownerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"title", project.Title,
		"user_id", ownerID,
	)

	return project, nil
}

// ListProjects retrieves all projects for a user
func (s *projectService) ListProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	return s.projectRepo.List(ctx, ownerID)
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id, ownerID string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id, ownerID)
}

// UpdateProject applies a partial update after checking ownership
func (s *projectService) UpdateProject(ctx context.Context, id, ownerID string, req *projectsSvc.UpdateProjectRequest) (*models.Project, error) {
	if _, err := s.GetProject(ctx, id, ownerID); err != nil {
		return nil, err
	}

	patch := &models.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		UpdatedAt:   time.Now().UTC(),
	}

	project, err := s.projectRepo.Update(ctx, id, ownerID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", id,
		"user_id", ownerID,
	)

	return project, nil
}

// DeleteProject removes the project, its tasks and all their edges.
// Edges go first, then tasks, then the project row; the first failure aborts.
func (s *projectService) DeleteProject(ctx context.Context, id, ownerID string) (*projectsSvc.DeleteProjectResult, error) {
	project, err := s.GetProject(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	var taskCount int
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		taskIDs, err := s.taskRepo.ListIDsByProject(ctx, id)
		if err != nil {
			return err
		}
		taskCount = len(taskIDs)

		if err := s.edges.deleteAllEdgesForProjectTasks(ctx, taskIDs); err != nil {
			return err
		}
		if err := s.taskRepo.DeleteByProject(ctx, id); err != nil {
			return err
		}
		return s.projectRepo.Delete(ctx, id, ownerID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project deleted",
		"id", id,
		"user_id", ownerID,
		"tasks_deleted", taskCount,
	)

	return &projectsSvc.DeleteProjectResult{
		Message:        fmt.Sprintf("Project with ID %q successfully deleted.", id),
		DeletedProject: project,
	}, nil
}
