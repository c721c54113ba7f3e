package projects

import (
	"context"
	"fmt"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
	projectsRepo "sylo/internal/domain/repositories/projects"
	"sylo/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, project_id, title, description, status, priority, assigned_to, deadline,
	ai_risk_score, ai_priority_boost, ai_estimated_completion_time, ai_scheduling_notes,
	created_at, updated_at`

// PostgresTaskRepository implements the TaskRepository interface
type PostgresTaskRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(config *postgres.RepositoryConfig) projectsRepo.TaskRepository {
	return &PostgresTaskRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new task
func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, title, description, status, priority, assigned_to, deadline,
			ai_risk_score, ai_priority_boost, ai_estimated_completion_time, ai_scheduling_notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, r.tables.Tasks)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.AssignedTo,
		task.Deadline,
		task.AIRiskScore,
		task.AIPriorityBoost,
		task.AIEstimatedCompletionTime,
		task.AISchedulingNotes,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		// The project was deleted between the ownership check and the insert
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", task.ProjectID, domain.ErrNotFound)
		}
		return domain.NewStoreError("insert task", err)
	}

	return nil
}

// GetByID retrieves a task matching both id and project
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id, projectID string) (*models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND project_id = $2
	`, taskColumns, r.tables.Tasks)

	executor := postgres.GetExecutor(ctx, r.pool)
	task, err := scanTask(executor.QueryRow(ctx, query, id, projectID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		return nil, domain.NewStoreError("get task", err)
	}

	return task, nil
}

// ListByProject retrieves every task of a project, oldest first
func (r *PostgresTaskRepository) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, taskColumns, r.tables.Tasks)

	return r.queryTasks(ctx, "list tasks", query, projectID)
}

// ListIDsByProject retrieves the ids of every task in a project
func (r *PostgresTaskRepository) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE project_id = $1
	`, r.tables.Tasks)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, domain.NewStoreError("list task ids", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, domain.NewStoreError("collect task ids", err)
	}

	return ids, nil
}

// ListByIDs retrieves the tasks with the given ids
func (r *PostgresTaskRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Task, error) {
	if len(ids) == 0 {
		return []models.Task{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ANY($1::uuid[])
		ORDER BY created_at ASC
	`, taskColumns, r.tables.Tasks)

	return r.queryTasks(ctx, "list tasks by ids", query, ids)
}

// Update applies the present patch fields and returns the stored row
func (r *PostgresTaskRepository) Update(ctx context.Context, id, projectID string, patch *models.TaskPatch) (*models.Task, error) {
	var b postgres.UpdateBuilder
	if patch.Title != nil {
		b.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.Set("description", *patch.Description)
	}
	if patch.Status != nil {
		b.Set("status", *patch.Status)
	}
	if patch.Priority != nil {
		b.Set("priority", *patch.Priority)
	}
	if patch.SetAssignedTo {
		b.Set("assigned_to", patch.AssignedTo)
	}
	if patch.SetDeadline {
		b.Set("deadline", patch.Deadline)
	}
	b.Set("updated_at", patch.UpdatedAt)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = %s AND project_id = %s
		RETURNING %s
	`, r.tables.Tasks, b.Clause(), b.Arg(id), b.Arg(projectID), taskColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	task, err := scanTask(executor.QueryRow(ctx, query, b.Args()...))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrUpdateFailed)
		}
		return nil, domain.NewStoreError("update task", err)
	}

	return task, nil
}

// Delete removes a single task row
func (r *PostgresTaskRepository) Delete(ctx context.Context, id, projectID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.Tasks)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, projectID)
	if err != nil {
		return domain.NewStoreError("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrDeleteInconsistency)
	}

	return nil
}

// DeleteByProject removes every task of a project
func (r *PostgresTaskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1
	`, r.tables.Tasks)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID); err != nil {
		return domain.NewStoreError("delete project tasks", err)
	}

	return nil
}

func (r *PostgresTaskRepository) queryTasks(ctx context.Context, op, query string, args ...any) ([]models.Task, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
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

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.AssignedTo,
		&task.Deadline,
		&task.AIRiskScore,
		&task.AIPriorityBoost,
		&task.AIEstimatedCompletionTime,
		&task.AISchedulingNotes,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
