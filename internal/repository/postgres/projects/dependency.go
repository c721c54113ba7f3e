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

// PostgresTaskDependencyRepository implements the TaskDependencyRepository interface
type PostgresTaskDependencyRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewTaskDependencyRepository creates a new task dependency repository
func NewTaskDependencyRepository(config *postgres.RepositoryConfig) projectsRepo.TaskDependencyRepository {
	return &PostgresTaskDependencyRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts an edge; the UNIQUE(task_id, depends_on_task_id) constraint rejects duplicates
func (r *PostgresTaskDependencyRepository) Create(ctx context.Context, dep *models.TaskDependency) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (task_id, depends_on_task_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.TaskDependencies)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		dep.TaskID,
		dep.DependsOnTaskID,
		dep.CreatedAt,
	).Scan(&dep.ID, &dep.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("dependency %s -> %s already exists", dep.TaskID, dep.DependsOnTaskID),
				ResourceType: "task_dependency",
			}
		}
		return domain.NewStoreError("insert dependency", err)
	}

	return nil
}

// GetByPair retrieves the edge for the exact ordered pair
func (r *PostgresTaskDependencyRepository) GetByPair(ctx context.Context, taskID, dependsOnTaskID string) (*models.TaskDependency, error) {
	query := fmt.Sprintf(`
		SELECT id, task_id, depends_on_task_id, created_at
		FROM %s
		WHERE task_id = $1 AND depends_on_task_id = $2
	`, r.tables.TaskDependencies)

	var dep models.TaskDependency
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, taskID, dependsOnTaskID).Scan(
		&dep.ID,
		&dep.TaskID,
		&dep.DependsOnTaskID,
		&dep.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("dependency %s -> %s: %w", taskID, dependsOnTaskID, domain.ErrNotFound)
		}
		return nil, domain.NewStoreError("get dependency", err)
	}

	return &dep, nil
}

// ListByTask retrieves the edges whose dependent side is taskID
func (r *PostgresTaskDependencyRepository) ListByTask(ctx context.Context, taskID string) ([]models.TaskDependency, error) {
	query := fmt.Sprintf(`
		SELECT id, task_id, depends_on_task_id, created_at
		FROM %s
		WHERE task_id = $1
		ORDER BY created_at ASC
	`, r.tables.TaskDependencies)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, taskID)
	if err != nil {
		return nil, domain.NewStoreError("list dependencies", err)
	}

	deps, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.TaskDependency])
	if err != nil {
		return nil, domain.NewStoreError("collect dependencies", err)
	}

	return deps, nil
}

// DeletePair removes the edge for the exact ordered pair
func (r *PostgresTaskDependencyRepository) DeletePair(ctx context.Context, taskID, dependsOnTaskID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE task_id = $1 AND depends_on_task_id = $2
	`, r.tables.TaskDependencies)

	return r.exec(ctx, "delete dependency", query, taskID, dependsOnTaskID)
}

// DeleteByTask removes edges where task_id = taskID
func (r *PostgresTaskDependencyRepository) DeleteByTask(ctx context.Context, taskID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE task_id = $1`, r.tables.TaskDependencies)
	return r.exec(ctx, "delete dependencies by task", query, taskID)
}

// DeleteByDependsOn removes edges where depends_on_task_id = taskID
func (r *PostgresTaskDependencyRepository) DeleteByDependsOn(ctx context.Context, taskID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE depends_on_task_id = $1`, r.tables.TaskDependencies)
	return r.exec(ctx, "delete dependencies by prerequisite", query, taskID)
}

// DeleteByTasks removes edges where task_id is in taskIDs
func (r *PostgresTaskDependencyRepository) DeleteByTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE task_id = ANY($1::uuid[])`, r.tables.TaskDependencies)
	return r.exec(ctx, "delete dependencies by tasks", query, taskIDs)
}

// DeleteByDependsOnTasks removes edges where depends_on_task_id is in taskIDs
func (r *PostgresTaskDependencyRepository) DeleteByDependsOnTasks(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE depends_on_task_id = ANY($1::uuid[])`, r.tables.TaskDependencies)
	return r.exec(ctx, "delete dependencies by prerequisites", query, taskIDs)
}

func (r *PostgresTaskDependencyRepository) exec(ctx context.Context, op, query string, args ...any) error {
	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, args...); err != nil {
		return domain.NewStoreError(op, err)
	}
	return nil
}
