package memory

import (
	"context"
	"fmt"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
)

// TaskDependencyRepository implements projects.TaskDependencyRepository.
// The ordered pair is unique, like the UNIQUE constraint of the SQL stores.
type TaskDependencyRepository struct {
	store *Store
}

func (r *TaskDependencyRepository) Create(ctx context.Context, dep *models.TaskDependency) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.deps {
		if row.TaskID == dep.TaskID && row.DependsOnTaskID == dep.DependsOnTaskID {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("dependency %s -> %s already exists", dep.TaskID, dep.DependsOnTaskID),
				ResourceType: "task_dependency",
				ResourceID:   row.ID,
			}
		}
	}

	dep.ID = s.newID()
	if dep.CreatedAt.IsZero() {
		dep.CreatedAt = s.now()
	}

	row := *dep
	s.deps[row.ID] = &row
	s.depOrder = append(s.depOrder, row.ID)
	return nil
}

func (r *TaskDependencyRepository) GetByPair(ctx context.Context, taskID, dependsOnTaskID string) (*models.TaskDependency, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.depOrder {
		if row := s.deps[id]; row.TaskID == taskID && row.DependsOnTaskID == dependsOnTaskID {
			dep := *row
			return &dep, nil
		}
	}
	return nil, fmt.Errorf("dependency %s -> %s: %w", taskID, dependsOnTaskID, domain.ErrNotFound)
}

func (r *TaskDependencyRepository) ListByTask(ctx context.Context, taskID string) ([]models.TaskDependency, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	deps := []models.TaskDependency{}
	for _, id := range s.depOrder {
		if row := s.deps[id]; row.TaskID == taskID {
			deps = append(deps, *row)
		}
	}
	return deps, nil
}

func (r *TaskDependencyRepository) DeletePair(ctx context.Context, taskID, dependsOnTaskID string) error {
	r.deleteWhere(func(d *models.TaskDependency) bool {
		return d.TaskID == taskID && d.DependsOnTaskID == dependsOnTaskID
	})
	return nil
}

func (r *TaskDependencyRepository) DeleteByTask(ctx context.Context, taskID string) error {
	r.deleteWhere(func(d *models.TaskDependency) bool { return d.TaskID == taskID })
	return nil
}

func (r *TaskDependencyRepository) DeleteByDependsOn(ctx context.Context, taskID string) error {
	r.deleteWhere(func(d *models.TaskDependency) bool { return d.DependsOnTaskID == taskID })
	return nil
}

func (r *TaskDependencyRepository) DeleteByTasks(ctx context.Context, taskIDs []string) error {
	set := toSet(taskIDs)
	r.deleteWhere(func(d *models.TaskDependency) bool { return set[d.TaskID] })
	return nil
}

func (r *TaskDependencyRepository) DeleteByDependsOnTasks(ctx context.Context, taskIDs []string) error {
	set := toSet(taskIDs)
	r.deleteWhere(func(d *models.TaskDependency) bool { return set[d.DependsOnTaskID] })
	return nil
}

func (r *TaskDependencyRepository) deleteWhere(match func(*models.TaskDependency) bool) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool)
	for id, row := range s.deps {
		if match(row) {
			drop[id] = true
			delete(s.deps, id)
		}
	}
	s.depOrder = removeIDs(s.depOrder, drop)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
