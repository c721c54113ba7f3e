package projects

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
	"sylo/internal/domain/repositories"
	projectsRepo "sylo/internal/domain/repositories/projects"
	projectsSvc "sylo/internal/domain/services/projects"
)

// taskService implements the TaskService interface
type taskService struct {
	projectRepo projectsRepo.ProjectRepository
	taskRepo    projectsRepo.TaskRepository
	edges       edgeCleaner
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	projectRepo projectsRepo.ProjectRepository,
	taskRepo projectsRepo.TaskRepository,
	depRepo projectsRepo.TaskDependencyRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) projectsSvc.TaskService {
	return &taskService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		edges:       edgeCleaner{depRepo: depRepo},
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateTask creates a task in an owned project
func (s *taskService) CreateTask(ctx context.Context, req *projectsSvc.CreateTaskRequest, ownerID string) (*models.Task, error) {
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID, ownerID); err != nil {
		return nil, err
	}

	var deadline *time.Time
	if req.Deadline != nil {
		t, err := projectsSvc.ParseDeadline(*req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("%w: deadline: %v", domain.ErrValidation, err)
		}
		deadline = &t
	}

	now := time.Now().UTC()
	task := &models.Task{
		ProjectID:                 req.ProjectID,
		Title:                     req.Title,
		Description:               req.Description,
		Status:                    req.Status,
		Priority:                  req.Priority,
		AssignedTo:                req.AssignedTo,
		Deadline:                  deadline,
		AIRiskScore:               req.AIRiskScore,
		AIPriorityBoost:           req.AIPriorityBoost,
		AIEstimatedCompletionTime: req.AIEstimatedCompletionTime,
		AISchedulingNotes:         req.AISchedulingNotes,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		"id", task.ID,
		"project_id", task.ProjectID,
		"user_id", ownerID,
	)

	return task, nil
}

// ListTasks retrieves all tasks of an owned project
func (s *taskService) ListTasks(ctx context.Context, projectID, ownerID string) ([]models.Task, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByProject(ctx, projectID)
}

// GetTask retrieves a task that belongs to an owned project
func (s *taskService) GetTask(ctx context.Context, id, projectID, ownerID string) (*models.Task, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	return s.taskRepo.GetByID(ctx, id, projectID)
}

// UpdateTask applies a partial update. The task's project never changes.
func (s *taskService) UpdateTask(ctx context.Context, id, projectID, ownerID string, req *projectsSvc.UpdateTaskRequest) (*models.Task, error) {
	if _, err := s.GetTask(ctx, id, projectID, ownerID); err != nil {
		return nil, err
	}

	patch := &models.TaskPatch{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		Priority:      req.Priority,
		SetAssignedTo: req.AssignedTo.Present,
		AssignedTo:    req.AssignedTo.Value,
		SetDeadline:   req.Deadline.Present,
		UpdatedAt:     time.Now().UTC(),
	}
	if req.Deadline.Present && req.Deadline.Value != nil {
		t, err := projectsSvc.ParseDeadline(*req.Deadline.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: deadline: %v", domain.ErrValidation, err)
		}
		patch.Deadline = &t
	}

	task, err := s.taskRepo.Update(ctx, id, projectID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated",
		"id", id,
		"project_id", projectID,
		"user_id", ownerID,
	)

	return task, nil
}

// DeleteTask removes the task's edges in both directions, then the task row.
// An edge failure aborts before the task row is touched.
func (s *taskService) DeleteTask(ctx context.Context, id, projectID, ownerID string) (*projectsSvc.DeleteTaskResult, error) {
	task, err := s.GetTask(ctx, id, projectID, ownerID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.edges.deleteAllEdgesForTask(ctx, id); err != nil {
			return err
		}
		return s.taskRepo.Delete(ctx, id, projectID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task deleted",
		"id", id,
		"project_id", projectID,
		"user_id", ownerID,
	)

	return &projectsSvc.DeleteTaskResult{
		Message:     fmt.Sprintf("Task with ID %q successfully deleted.", id),
		DeletedTask: task,
	}, nil
}
