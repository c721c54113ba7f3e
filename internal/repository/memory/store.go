// Package memory implements the record store in process memory.
//
// It backs the service tests and STORE_DRIVER=memory dev runs. Each table
// keeps insertion order so list results are deterministic. There are no
// multi-table transactions: ExecTx runs the function directly.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	models "sylo/internal/domain/models/projects"
	promptModels "sylo/internal/domain/models/prompts"
	"sylo/internal/domain/repositories"
)

// Store holds the projects, tasks, task_dependencies and prompts tables
type Store struct {
	mu sync.RWMutex

	projects map[string]*models.Project
	tasks    map[string]*models.Task
	deps     map[string]*models.TaskDependency
	prompts  map[string]*promptModels.Prompt

	projectOrder []string
	taskOrder    []string
	depOrder     []string
	promptOrder  []string

	now   func() time.Time
	newID func() string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		projects: make(map[string]*models.Project),
		tasks:    make(map[string]*models.Task),
		deps:     make(map[string]*models.TaskDependency),
		prompts:  make(map[string]*promptModels.Prompt),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Projects returns the projects table
func (s *Store) Projects() *ProjectRepository {
	return &ProjectRepository{store: s}
}

// Tasks returns the tasks table
func (s *Store) Tasks() *TaskRepository {
	return &TaskRepository{store: s}
}

// Dependencies returns the task_dependencies table
func (s *Store) Dependencies() *TaskDependencyRepository {
	return &TaskDependencyRepository{store: s}
}

// Prompts returns the prompts table
func (s *Store) Prompts() *PromptRepository {
	return &PromptRepository{store: s}
}

// TransactionManager returns a manager that runs functions without isolation
func (s *Store) TransactionManager() repositories.TransactionManager {
	return passthroughTx{}
}

// Counts reports the number of rows in each table
func (s *Store) Counts() (projects, tasks, deps int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects), len(s.tasks), len(s.deps)
}

// AllDependencies returns a copy of every edge in insertion order
func (s *Store) AllDependencies() []models.TaskDependency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TaskDependency, 0, len(s.depOrder))
	for _, id := range s.depOrder {
		out = append(out, *s.deps[id])
	}
	return out
}

type passthroughTx struct{}

func (passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// removeIDs drops ids from an order slice
func removeIDs(order []string, drop map[string]bool) []string {
	return slices.DeleteFunc(order, func(id string) bool { return drop[id] })
}
