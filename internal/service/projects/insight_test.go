package projects

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sylo/internal/domain"
	models "sylo/internal/domain/models/projects"
	projectsSvc "sylo/internal/domain/services/projects"
)

var insightNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestInsights(env *testEnv) *insightService {
	return &insightService{
		tasks:  env.tasks,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return insightNow },
	}
}

func (e *testEnv) createTaskDue(t *testing.T, owner, projectID, title string, status models.TaskStatus, deadline string) *models.Task {
	t.Helper()
	req := &projectsSvc.CreateTaskRequest{ProjectID: projectID, Title: title, Status: status}
	if deadline != "" {
		req.Deadline = &deadline
	}
	req.ApplyDefaults()
	task, err := e.tasks.CreateTask(context.Background(), req, owner)
	require.NoError(t, err)
	return task
}

func TestInsightService_AnalyzeProjectRisk(t *testing.T) {
	tests := []struct {
		name        string
		tasks       []models.TaskStatus
		deadlines   []string
		wantDelayed int
		wantScore   float64
		wantLevel   projectsSvc.RiskLevel
	}{
		{
			name:      "no tasks",
			wantLevel: projectsSvc.RiskLevelLow,
		},
		{
			name:        "one of ten overdue",
			tasks:       []models.TaskStatus{"in_progress", "todo", "todo", "todo", "todo", "todo", "todo", "todo", "todo", "todo"},
			deadlines:   []string{"2026-03-01", "", "", "", "", "", "", "", "", "2026-04-01"},
			wantDelayed: 1,
			wantScore:   10,
			wantLevel:   projectsSvc.RiskLevelLow,
		},
		{
			name:        "completed tasks past deadline are not delayed",
			tasks:       []models.TaskStatus{"completed", "todo", "review", "todo"},
			deadlines:   []string{"2026-01-01", "2026-03-14", "", "2027-01-01"},
			wantDelayed: 1,
			wantScore:   25,
			wantLevel:   projectsSvc.RiskLevelMedium,
		},
		{
			name:        "half overdue",
			tasks:       []models.TaskStatus{"todo", "blocked"},
			deadlines:   []string{"2026-02-01", ""},
			wantDelayed: 1,
			wantScore:   50,
			wantLevel:   projectsSvc.RiskLevelHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			p := env.createProject(t, ownerA, "Roadmap")
			for i, status := range tt.tasks {
				env.createTaskDue(t, ownerA, p.ID, "task", status, tt.deadlines[i])
			}

			got, err := newTestInsights(env).AnalyzeProjectRisk(context.Background(), p.ID, ownerA)
			require.NoError(t, err)
			assert.Equal(t, p.ID, got.ProjectID)
			assert.Equal(t, len(tt.tasks), got.TotalTaskCount)
			assert.Equal(t, tt.wantDelayed, got.DelayedTaskCount)
			assert.InDelta(t, tt.wantScore, got.RiskScore, 0.001)
			assert.Equal(t, tt.wantLevel, got.OverallRiskLevel)
		})
	}
}

func TestInsightService_SuggestTaskStatusUpdates(t *testing.T) {
	env := newTestEnv(t)
	insights := newTestInsights(env)
	ctx := context.Background()

	p := env.createProject(t, ownerA, "Roadmap")
	late := env.createTaskDue(t, ownerA, p.ID, "late", models.TaskStatusInProgress, "2026-03-01")
	env.createTaskDue(t, ownerA, p.ID, "on time", models.TaskStatusInProgress, "2026-04-01")
	env.createTaskDue(t, ownerA, p.ID, "late but not started", models.TaskStatusTodo, "2026-03-01")
	env.createTaskDue(t, ownerA, p.ID, "no deadline", models.TaskStatusInProgress, "")

	got, err := insights.SuggestTaskStatusUpdates(ctx, p.ID, ownerA)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, late.ID, got[0].TaskID)
	assert.Equal(t, "late", got[0].TaskName)
	assert.Equal(t, models.TaskStatusInProgress, got[0].CurrentStatus)
	assert.Equal(t, models.TaskStatusBlocked, got[0].SuggestedStatus)
	assert.Contains(t, got[0].Reason, "2026-03-01")

	// suggestions are advisory
	task, err := env.tasks.GetTask(ctx, late.ID, p.ID, ownerA)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, task.Status)
}

func TestInsightService_OwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	insights := newTestInsights(env)
	ctx := context.Background()
	p := env.createProject(t, ownerA, "Private")

	_, err := insights.AnalyzeProjectRisk(ctx, p.ID, ownerB)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = insights.SuggestTaskStatusUpdates(ctx, p.ID, ownerB)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
