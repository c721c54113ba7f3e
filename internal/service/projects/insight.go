package projects

import (
	"context"
	"log/slog"
	"time"

	models "sylo/internal/domain/models/projects"
	projectsSvc "sylo/internal/domain/services/projects"
)

const (
	mediumRiskThreshold = 20.0
	highRiskThreshold   = 50.0
)

// insightService implements the InsightService interface on top of the task manager,
// so ownership checks are the task manager's
type insightService struct {
	tasks  projectsSvc.TaskService
	logger *slog.Logger
	now    func() time.Time
}

// NewInsightService creates a new insight service
func NewInsightService(tasks projectsSvc.TaskService, logger *slog.Logger) projectsSvc.InsightService {
	return &insightService{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// AnalyzeProjectRisk scores delayed/total*100. A task is delayed when its deadline
// has passed and it is not completed.
func (s *insightService) AnalyzeProjectRisk(ctx context.Context, projectID, ownerID string) (*projectsSvc.RiskAssessment, error) {
	tasks, err := s.tasks.ListTasks(ctx, projectID, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	delayed := 0
	for i := range tasks {
		if isDelayed(&tasks[i], now) {
			delayed++
		}
	}

	var score float64
	if len(tasks) > 0 {
		score = float64(delayed) / float64(len(tasks)) * 100
	}

	s.logger.Debug("project risk analyzed",
		"project_id", projectID,
		"delayed", delayed,
		"total", len(tasks),
		"score", score,
	)

	return &projectsSvc.RiskAssessment{
		ProjectID:        projectID,
		OverallRiskLevel: riskLevel(score),
		RiskScore:        score,
		DelayedTaskCount: delayed,
		TotalTaskCount:   len(tasks),
	}, nil
}

// SuggestTaskStatusUpdates proposes "blocked" for in-progress tasks past their deadline
func (s *insightService) SuggestTaskStatusUpdates(ctx context.Context, projectID, ownerID string) ([]projectsSvc.StatusSuggestion, error) {
	tasks, err := s.tasks.ListTasks(ctx, projectID, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	suggestions := []projectsSvc.StatusSuggestion{}
	for _, t := range tasks {
		if t.Status != models.TaskStatusInProgress || !isDelayed(&t, now) {
			continue
		}
		suggestions = append(suggestions, projectsSvc.StatusSuggestion{
			TaskID:          t.ID,
			TaskName:        t.Title,
			CurrentStatus:   t.Status,
			SuggestedStatus: models.TaskStatusBlocked,
			Reason:          "deadline " + t.Deadline.UTC().Format(time.DateOnly) + " has passed",
		})
	}
	return suggestions, nil
}

func isDelayed(t *models.Task, now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now) && t.Status != models.TaskStatusCompleted
}

func riskLevel(score float64) projectsSvc.RiskLevel {
	switch {
	case score < mediumRiskThreshold:
		return projectsSvc.RiskLevelLow
	case score < highRiskThreshold:
		return projectsSvc.RiskLevelMedium
	default:
		return projectsSvc.RiskLevelHigh
	}
}
