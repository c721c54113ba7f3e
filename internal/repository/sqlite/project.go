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

const projectColumns = "id, user_id, title, description, status, created_at, updated_at"

type projectRepository struct {
	db *DB
}

// NewProjectRepository creates a project repository on db
func NewProjectRepository(db *DB) projectsRepo.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	project.ID = r.db.newID()
	_, err := r.db.executor(ctx).ExecContext(ctx, `
		INSERT INTO projects (id, user_id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, project.ID, project.UserID, project.Title, project.Description, project.Status,
		project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return domain.NewStoreError("insert project", err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	row := r.db.executor(ctx).QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ? AND user_id = ?", id, userID)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, domain.NewStoreError("get project", err)
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context, userID string) ([]models.Project, error) {
	rows, err := r.db.executor(ctx).QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE user_id = ? ORDER BY updated_at DESC", userID)
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

func (r *projectRepository) Update(ctx context.Context, id, userID string, patch *models.ProjectPatch) (*models.Project, error) {
	var sets []string
	var args []any
	if patch.Title != nil {
		sets, args = append(sets, "title = ?"), append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets, args = append(sets, "description = ?"), append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets, args = append(sets, "status = ?"), append(args, *patch.Status)
	}
	sets, args = append(sets, "updated_at = ?"), append(args, patch.UpdatedAt)
	args = append(args, id, userID)

	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = ? AND user_id = ? RETURNING %s",
		strings.Join(sets, ", "), projectColumns)
	project, err := scanProject(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrUpdateFailed)
		}
		return nil, domain.NewStoreError("update project", err)
	}
	return project, nil
}

func (r *projectRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.executor(ctx).ExecContext(ctx,
		"DELETE FROM projects WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return domain.NewStoreError("delete project", err)
	}
	return checkDeleted(res, "project", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*models.Project, error) {
	var p models.Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
