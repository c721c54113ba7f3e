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

const projectColumns = "id, user_id, title, description, status, created_at, updated_at"

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *postgres.RepositoryConfig) projectsRepo.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.UserID,
		project.Title,
		project.Description,
		project.Status,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return domain.NewStoreError("insert project", err)
	}

	return nil
}

// GetByID retrieves a project by ID and owner
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, projectColumns, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	project, err := scanProject(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, domain.NewStoreError("get project", err)
	}

	return project, nil
}

// List retrieves all projects for a user, most recently updated first
func (r *PostgresProjectRepository) List(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, projectColumns, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, domain.NewStoreError("list projects", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, domain.NewStoreError("scan project", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate projects", err)
	}

	return projects, nil
}

// Update applies the present patch fields and returns the stored row
func (r *PostgresProjectRepository) Update(ctx context.Context, id, userID string, patch *models.ProjectPatch) (*models.Project, error) {
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
	b.Set("updated_at", patch.UpdatedAt)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = %s AND user_id = %s
		RETURNING %s
	`, r.tables.Projects, b.Clause(), b.Arg(id), b.Arg(userID), projectColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	project, err := scanProject(executor.QueryRow(ctx, query, b.Args()...))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrUpdateFailed)
		}
		return nil, domain.NewStoreError("update project", err)
	}

	return project, nil
}

// Delete removes the project row
func (r *PostgresProjectRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return domain.NewStoreError("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrDeleteInconsistency)
	}

	return nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Description,
		&project.Status,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}
