package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
	projectsRepo "sylo/internal/domain/repositories/projects"
)

const taskColumns = `id, project_id, title, description, status, priority, assigned_to, deadline,
	ai_risk_score, ai_priority_boost, ai_estimated_completion_time, ai_scheduling_notes,
	created_at, updated_at`

type taskRepository struct {
	db *DB
}

// NewTaskRepository creates a task repository on db
func NewTaskRepository(db *DB) projectsRepo.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	task.ID = r.db.newID()
	_, err := r.db.executor(ctx).ExecContext(ctx, `
		INSERT INTO tasks (id, project_id, title, description, status, priority, assigned_to, deadline,
			ai_risk_score, ai_priority_boost, ai_estimated_completion_time, ai_scheduling_notes,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.ProjectID, task.Title, task.Description, task.Status, task.Priority,
		task.AssignedTo, task.Deadline, task.AIRiskScore, task.AIPriorityBoost,
		task.AIEstimatedCompletionTime, task.AISchedulingNotes, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return domain.NewStoreError("insert task", err)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id, projectID string) (*models.Task, error) {
	row := r.db.executor(ctx).QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND project_id = ?", id, projectID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		return nil, domain.NewStoreError("get task", err)
	}
	return task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return r.queryTasks(ctx, "list tasks",
		"SELECT "+taskColumns+" FROM tasks WHERE project_id = ? ORDER BY created_at ASC", projectID)
}

func (r *taskRepository) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.db.executor(ctx).QueryContext(ctx, "SELECT id FROM tasks WHERE project_id = ?", projectID)
	if err != nil {
		return nil, domain.NewStoreError("list task ids", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, domain.NewStoreError("scan task id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("list task ids", err)
	}
	return ids, nil
}

func (r *taskRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Task, error) {
	if len(ids) == 0 {
		return []models.Task{}, nil
	}
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id IN (%s) ORDER BY created_at ASC",
		taskColumns, inClause(len(ids)))
	return r.queryTasks(ctx, "list tasks by ids", query, toArgs(ids)...)
}

func (r *taskRepository) Update(ctx context.Context, id, projectID string, patch *models.TaskPatch) (*models.Task, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.SetAssignedTo {
		add("assigned_to", patch.AssignedTo)
	}
	if patch.SetDeadline {
		add("deadline", patch.Deadline)
	}
	add("updated_at", patch.UpdatedAt)
	args = append(args, id, projectID)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ? AND project_id = ? RETURNING %s",
		strings.Join(sets, ", "), taskColumns)
	task, err := scanTask(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrUpdateFailed)
		}
		return nil, domain.NewStoreError("update task", err)
	}
	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id, projectID string) error {
	res, err := r.db.executor(ctx).ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND project_id = ?", id, projectID)
	if err != nil {
		return domain.NewStoreError("delete task", err)
	}
	return checkDeleted(res, "task", id)
}

func (r *taskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.executor(ctx).ExecContext(ctx,
		"DELETE FROM tasks WHERE project_id = ?", projectID); err != nil {
		return domain.NewStoreError("delete project tasks", err)
	}
	return nil
}

func (r *taskRepository) queryTasks(ctx context.Context, op, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, domain.NewStoreError("scan task", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	return tasks, nil
}

func scanTask(row scanner) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssignedTo, &t.Deadline,
		&t.AIRiskScore, &t.AIPriorityBoost, &t.AIEstimatedCompletionTime, &t.AISchedulingNotes,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
