package projects

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
	projectsSvc "sylo/internal/domain/services/projects"
	"sylo/internal/repository/memory"
)

func TestProjectService_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProject(t, ownerA, "Launch")
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, ownerA, p.UserID)
	assert.Equal(t, models.ProjectStatusActive, p.Status)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := env.projects.GetProject(ctx, p.ID, ownerA)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)

	_, err = env.projects.GetProject(ctx, p.ID, ownerB)
	assert.ErrorIs(t, err, domain.ErrNotFound, "other owners must not see the project")
}

func TestProjectService_ListScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createProject(t, ownerA, "one")
	env.createProject(t, ownerA, "two")
	env.createProject(t, ownerB, "three")

	listA, err := env.projects.ListProjects(ctx, ownerA)
	require.NoError(t, err)
	assert.Len(t, listA, 2)

	listC, err := env.projects.ListProjects(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, listC)
}

func TestProjectService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, ownerA, "before")

	title := "after"
	status := models.ProjectStatusArchived
	updated, err := env.projects.UpdateProject(ctx, p.ID, ownerA, &projectsSvc.UpdateProjectRequest{
		Title:  &title,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, models.ProjectStatusArchived, updated.Status)
	assert.Equal(t, p.Description, updated.Description)
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))

	_, err = env.projects.UpdateProject(ctx, p.ID, ownerB, &projectsSvc.UpdateProjectRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Scenario: deleting a project removes its tasks and every edge between them
func TestProjectService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProject(t, ownerA, "P")
	t1 := env.createTask(t, ownerA, p.ID, "T1")
	t2 := env.createTask(t, ownerA, p.ID, "T2")
	t3 := env.createTask(t, ownerA, p.ID, "T3")
	_, err := env.deps.CreateDependency(ctx, t2.ID, t1.ID, p.ID, ownerA)
	require.NoError(t, err)
	_, err = env.deps.CreateDependency(ctx, t3.ID, t2.ID, p.ID, ownerA)
	require.NoError(t, err)

	other := env.createProject(t, ownerA, "Q")
	env.createTask(t, ownerA, other.ID, "untouched")

	res, err := env.projects.DeleteProject(ctx, p.ID, ownerA)
	require.NoError(t, err)
	assert.Equal(t, `Project with ID "`+p.ID+`" successfully deleted.`, res.Message)
	assert.Equal(t, p.ID, res.DeletedProject.ID)

	projects, tasks, deps := env.store.Counts()
	assert.Equal(t, 1, projects)
	assert.Equal(t, 1, tasks)
	assert.Equal(t, 0, deps)

	_, err = env.projects.GetProject(ctx, p.ID, ownerA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.tasks.ListTasks(ctx, p.ID, ownerA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.tasks.GetTask(ctx, t1.ID, p.ID, ownerA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_RowGoneAfterPrecheck(t *testing.T) {
	store := memory.NewStore()
	env := newTestEnvWithRepos(t, store, vanishingProjects{store.Projects()}, store.Tasks(), store.Dependencies())
	ctx := context.Background()

	t.Run("update", func(t *testing.T) {
		p := env.createProject(t, ownerA, "P")
		title := "renamed"
		_, err := env.projects.UpdateProject(ctx, p.ID, ownerA, &projectsSvc.UpdateProjectRequest{Title: &title})
		assert.ErrorIs(t, err, domain.ErrUpdateFailed)
	})

	t.Run("delete", func(t *testing.T) {
		p := env.createProject(t, ownerA, "P")
		env.createTask(t, ownerA, p.ID, "T1")
		res, err := env.projects.DeleteProject(ctx, p.ID, ownerA)
		assert.ErrorIs(t, err, domain.ErrDeleteInconsistency)
		assert.Nil(t, res)
	})
}

func TestProjectService_DeleteEmptyProject(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t, ownerA, "empty")

	_, err := env.projects.DeleteProject(context.Background(), p.ID, ownerA)
	require.NoError(t, err)

	projects, _, _ := env.store.Counts()
	assert.Zero(t, projects)
}

func TestProjectService_DeleteNotOwned(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t, ownerA, "mine")

	_, err := env.projects.DeleteProject(context.Background(), p.ID, ownerB)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	projects, _, _ := env.store.Counts()
	assert.Equal(t, 1, projects)
}

func TestProjectService_DeleteFailsFast(t *testing.T) {
	tests := []struct {
		name      string
		failOn    string
		wantCalls []string
	}{
		{
			name:      "dependent edges fail",
			failOn:    "DeleteByTasks",
			wantCalls: []string{"DeleteByTasks"},
		},
		{
			name:      "prerequisite edges fail",
			failOn:    "DeleteByDependsOnTasks",
			wantCalls: []string{"DeleteByTasks", "DeleteByDependsOnTasks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := newTestEnv(t)
			deps := &failingDeps{TaskDependencyRepository: base.store.Dependencies(), failOn: tt.failOn}
			env := newTestEnvWithDeps(t, base.store, deps)

			p := env.createProject(t, ownerA, "P")
			env.createTask(t, ownerA, p.ID, "T1")

			_, err := env.projects.DeleteProject(context.Background(), p.ID, ownerA)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrStore))
			assert.Equal(t, tt.wantCalls, deps.calls)

			projects, tasks, _ := env.store.Counts()
			assert.Equal(t, 1, projects, "project row must survive")
			assert.Equal(t, 1, tasks, "task rows must survive")
		})
	}
}
