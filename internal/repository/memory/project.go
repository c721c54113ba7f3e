package memory

import (
	"context"
	"fmt"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
)

// ProjectRepository implements projects.ProjectRepository
type ProjectRepository struct {
	store *Store
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	project.ID = s.newID()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = s.now()
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = project.CreatedAt
	}

	row := *project
	s.projects[row.ID] = &row
	s.projectOrder = append(s.projectOrder, row.ID)
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.projects[id]
	if !ok || row.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	project := *row
	return &project, nil
}

func (r *ProjectRepository) List(ctx context.Context, userID string) ([]models.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := []models.Project{}
	for _, id := range s.projectOrder {
		if row := s.projects[id]; row.UserID == userID {
			projects = append(projects, *row)
		}
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id, userID string, patch *models.ProjectPatch) (*models.Project, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.projects[id]
	if !ok || row.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrUpdateFailed)
	}
	patch.Apply(row)
	project := *row
	return &project, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id, userID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.projects[id]
	if !ok || row.UserID != userID {
		return fmt.Errorf("project %s: %w", id, domain.ErrDeleteInconsistency)
	}
	delete(s.projects, id)
	s.projectOrder = removeIDs(s.projectOrder, map[string]bool{id: true})
	return nil
}
