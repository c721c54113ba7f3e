package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
	projectsRepo "sylo/internal/domain/repositories/projects"
)

type taskDependencyRepository struct {
	db *DB
}

// NewTaskDependencyRepository creates a task dependency repository on db
func NewTaskDependencyRepository(db *DB) projectsRepo.TaskDependencyRepository {
	return &taskDependencyRepository{db: db}
}

func (r *taskDependencyRepository) Create(ctx context.Context, dep *models.TaskDependency) error {
	dep.ID = r.db.newID()
	_, err := r.db.executor(ctx).ExecContext(ctx, `
		INSERT INTO task_dependencies (id, task_id, depends_on_task_id, created_at)
		VALUES (?, ?, ?, ?)
	`, dep.ID, dep.TaskID, dep.DependsOnTaskID, dep.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("dependency %s -> %s already exists", dep.TaskID, dep.DependsOnTaskID),
				ResourceType: "task_dependency",
			}
		}
		return domain.NewStoreError("insert dependency", err)
	}
	return nil
}

func (r *taskDependencyRepository) GetByPair(ctx context.Context, taskID, dependsOnTaskID string) (*models.TaskDependency, error) {
	var dep models.TaskDependency
	err := r.db.executor(ctx).QueryRowContext(ctx, `
		SELECT id, task_id, depends_on_task_id, created_at
		FROM task_dependencies
		WHERE task_id = ? AND depends_on_task_id = ?
	`, taskID, dependsOnTaskID).Scan(&dep.ID, &dep.TaskID, &dep.DependsOnTaskID, &dep.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("dependency %s -> %s: %w", taskID, dependsOnTaskID, domain.ErrNotFound)
		}
		return nil, domain.NewStoreError("get dependency", err)
	}
	return &dep, nil
}

func (r *taskDependencyRepository) ListByTask(ctx context.Context, taskID string) ([]models.TaskDependency, error) {
	rows, err := r.db.executor(ctx).QueryContext(ctx, `
		SELECT id, task_id, depends_on_task_id, created_at
		FROM task_dependencies
		WHERE task_id = ?
		ORDER BY created_at ASC
	`, taskID)
	if err != nil {
		return nil, domain.NewStoreError("list dependencies", err)
	}
	defer rows.Close()

	deps := []models.TaskDependency{}
	for rows.Next() {
		var dep models.TaskDependency
		if err := rows.Scan(&dep.ID, &dep.TaskID, &dep.DependsOnTaskID, &dep.CreatedAt); err != nil {
			return nil, domain.NewStoreError("scan dependency", err)
		}
		deps = append(deps, dep)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("list dependencies", err)
	}
	return deps, nil
}

func (r *taskDependencyRepository) DeletePair(ctx context.Context, taskID, dependsOnTaskID string) error {
	return r.exec(ctx, "delete dependency",
		"DELETE FROM task_dependencies WHERE task_id = ? AND depends_on_task_id = ?", taskID, dependsOnTaskID)
}

func (r *taskDependencyRepository) DeleteByTask(ctx context.Context, taskID string) error {
	return r.exec(ctx, "delete dependencies by task",
		"DELETE FROM task_dependencies WHERE task_id = ?", taskID)
}

func (r *taskDependencyRepository) DeleteByDependsOn(ctx context.Context, taskID string) error {
	return r.exec(ctx, "delete dependencies by prerequisite",
		"DELETE FROM task_dependencies WHERE depends_on_task_id = ?", taskID)
}

func (r *taskDependencyRepository) DeleteByTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.exec(ctx, "delete dependencies by tasks",
		fmt.Sprintf("DELETE FROM task_dependencies WHERE task_id IN (%s)", inClause(len(taskIDs))),
		toArgs(taskIDs)...)
}

func (r *taskDependencyRepository) DeleteByDependsOnTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.exec(ctx, "delete dependencies by prerequisites",
		fmt.Sprintf("DELETE FROM task_dependencies WHERE depends_on_task_id IN (%s)", inClause(len(taskIDs))),
		toArgs(taskIDs)...)
}

func (r *taskDependencyRepository) exec(ctx context.Context, op, query string, args ...any) error {
	if _, err := r.db.executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return domain.NewStoreError(op, err)
	}
	return nil
}
