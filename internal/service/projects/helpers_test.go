package projects

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
	projectsRepo "sylo/internal/domain/repositories/projects"
	projectsSvc "sylo/internal/domain/services/projects"
	"sylo/internal/repository/memory"
)

const (
	ownerA = "user-a"
	ownerB = "user-b"
)

type testEnv struct {
	store    *memory.Store
	projects projectsSvc.ProjectService
	tasks    projectsSvc.TaskService
	deps     projectsSvc.DependencyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	return newTestEnvWithDeps(t, store, store.Dependencies())
}

// newTestEnvWithDeps wires the services over store, substituting depRepo for the edge table
func newTestEnvWithDeps(t *testing.T, store *memory.Store, depRepo projectsRepo.TaskDependencyRepository) *testEnv {
	t.Helper()
	return newTestEnvWithRepos(t, store, store.Projects(), store.Tasks(), depRepo)
}

func newTestEnvWithRepos(
	t *testing.T,
	store *memory.Store,
	projectRepo projectsRepo.ProjectRepository,
	taskRepo projectsRepo.TaskRepository,
	depRepo projectsRepo.TaskDependencyRepository,
) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tx := store.TransactionManager()

	tasks := NewTaskService(projectRepo, taskRepo, depRepo, tx, logger)
	return &testEnv{
		store:    store,
		projects: NewProjectService(projectRepo, taskRepo, depRepo, tx, logger),
		tasks:    tasks,
		deps:     NewDependencyService(tasks, taskRepo, depRepo, logger),
	}
}

func (e *testEnv) createProject(t *testing.T, owner, title string) *models.Project {
	t.Helper()
	req := &projectsSvc.CreateProjectRequest{Title: title}
	req.ApplyDefaults()
	p, err := e.projects.CreateProject(context.Background(), req, owner)
	require.NoError(t, err)
	return p
}

func (e *testEnv) createTask(t *testing.T, owner, projectID, title string) *models.Task {
	t.Helper()
	req := &projectsSvc.CreateTaskRequest{ProjectID: projectID, Title: title}
	req.ApplyDefaults()
	task, err := e.tasks.CreateTask(context.Background(), req, owner)
	require.NoError(t, err)
	return task
}

func taskIDs(tasks []models.Task) []string {
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

// failingDeps fails the named delete operation and records every delete call
type failingDeps struct {
	*memory.TaskDependencyRepository
	failOn string
	calls  []string
}

func (f *failingDeps) fail(op string) error {
	f.calls = append(f.calls, op)
	if op == f.failOn {
		return domain.NewStoreError(op, io.ErrUnexpectedEOF)
	}
	return nil
}

func (f *failingDeps) DeleteByTask(ctx context.Context, taskID string) error {
	if err := f.fail("DeleteByTask"); err != nil {
		return err
	}
	return f.TaskDependencyRepository.DeleteByTask(ctx, taskID)
}

func (f *failingDeps) DeleteByDependsOn(ctx context.Context, taskID string) error {
	if err := f.fail("DeleteByDependsOn"); err != nil {
		return err
	}
	return f.TaskDependencyRepository.DeleteByDependsOn(ctx, taskID)
}

func (f *failingDeps) DeleteByTasks(ctx context.Context, ids []string) error {
	if err := f.fail("DeleteByTasks"); err != nil {
		return err
	}
	return f.TaskDependencyRepository.DeleteByTasks(ctx, ids)
}

func (f *failingDeps) DeleteByDependsOnTasks(ctx context.Context, ids []string) error {
	if err := f.fail("DeleteByDependsOnTasks"); err != nil {
		return err
	}
	return f.TaskDependencyRepository.DeleteByDependsOnTasks(ctx, ids)
}

// vanishingProjects removes the row right before Update or Delete writes,
// as if another request deleted it after the precheck
type vanishingProjects struct {
	*memory.ProjectRepository
}

func (v vanishingProjects) Update(ctx context.Context, id, userID string, patch *models.ProjectPatch) (*models.Project, error) {
	_ = v.ProjectRepository.Delete(ctx, id, userID)
	return v.ProjectRepository.Update(ctx, id, userID, patch)
}

func (v vanishingProjects) Delete(ctx context.Context, id, userID string) error {
	_ = v.ProjectRepository.Delete(ctx, id, userID)
	return v.ProjectRepository.Delete(ctx, id, userID)
}

// vanishingTasks is vanishingProjects for the tasks table
type vanishingTasks struct {
	*memory.TaskRepository
}

func (v vanishingTasks) Update(ctx context.Context, id, projectID string, patch *models.TaskPatch) (*models.Task, error) {
	_ = v.TaskRepository.Delete(ctx, id, projectID)
	return v.TaskRepository.Update(ctx, id, projectID, patch)
}

func (v vanishingTasks) Delete(ctx context.Context, id, projectID string) error {
	_ = v.TaskRepository.Delete(ctx, id, projectID)
	return v.TaskRepository.Delete(ctx, id, projectID)
}

// racingDeps misses the edge on the first lookup, then loses the insert to a
// concurrent writer that stored the same pair
type racingDeps struct {
	*memory.TaskDependencyRepository
	lookups int
	winner  *models.TaskDependency
}

func (r *racingDeps) GetByPair(ctx context.Context, taskID, dependsOnTaskID string) (*models.TaskDependency, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, domain.ErrNotFound
	}
	return r.TaskDependencyRepository.GetByPair(ctx, taskID, dependsOnTaskID)
}

func (r *racingDeps) Create(ctx context.Context, dep *models.TaskDependency) error {
	r.winner = &models.TaskDependency{TaskID: dep.TaskID, DependsOnTaskID: dep.DependsOnTaskID}
	if err := r.TaskDependencyRepository.Create(ctx, r.winner); err != nil {
		return err
	}
	return r.TaskDependencyRepository.Create(ctx, dep)
}
