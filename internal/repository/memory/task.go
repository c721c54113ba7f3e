package memory

import (
	"context"
	"fmt"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
)

// TaskRepository implements projects.TaskRepository
type TaskRepository struct {
	store *Store
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.newID()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	row := *task
	s.tasks[row.ID] = &row
	s.taskOrder = append(s.taskOrder, row.ID)
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id, projectID string) (*models.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.tasks[id]
	if !ok || row.ProjectID != projectID {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	task := *row
	return &task, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []models.Task{}
	for _, id := range s.taskOrder {
		if row := s.tasks[id]; row.ProjectID == projectID {
			tasks = append(tasks, *row)
		}
	}
	return tasks, nil
}

func (r *TaskRepository) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := []string{}
	for _, id := range s.taskOrder {
		if s.tasks[id].ProjectID == projectID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *TaskRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	tasks := []models.Task{}
	for _, id := range s.taskOrder {
		if want[id] {
			tasks = append(tasks, *s.tasks[id])
		}
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, id, projectID string, patch *models.TaskPatch) (*models.Task, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.tasks[id]
	if !ok || row.ProjectID != projectID {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrUpdateFailed)
	}
	patch.Apply(row)
	task := *row
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, projectID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.tasks[id]
	if !ok || row.ProjectID != projectID {
		return fmt.Errorf("task %s: %w", id, domain.ErrDeleteInconsistency)
	}
	delete(s.tasks, id)
	s.taskOrder = removeIDs(s.taskOrder, map[string]bool{id: true})
	return nil
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool)
	for id, row := range s.tasks {
		if row.ProjectID == projectID {
			drop[id] = true
			delete(s.tasks, id)
		}
	}
	s.taskOrder = removeIDs(s.taskOrder, drop)
	return nil
}
