package projects

import (
	"context"

	"sylo/internal/domain/models/projects"
)

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// RiskAssessment summarizes schedule risk from task deadlines and statuses
type RiskAssessment struct {
	ProjectID        string    `json:"projectId"`
	OverallRiskLevel RiskLevel `json:"overallRiskLevel"`
	RiskScore        float64   `json:"riskScore"`
	DelayedTaskCount int       `json:"delayedTaskCount"`
	TotalTaskCount   int       `json:"totalTaskCount"`
}

// StatusSuggestion proposes a status change for one task. It is advisory; nothing is written.
type StatusSuggestion struct {
	TaskID          string              `json:"taskId"`
	TaskName        string              `json:"taskName"`
	CurrentStatus   projects.TaskStatus `json:"currentStatus"`
	SuggestedStatus projects.TaskStatus `json:"suggestedStatus"`
	Reason          string              `json:"reason"`
}

// InsightService derives read-only project health figures from the task list
type InsightService interface {
	// AnalyzeProjectRisk scores the share of delayed tasks; domain.ErrNotFound if the project is not owned
	AnalyzeProjectRisk(ctx context.Context, projectID, ownerID string) (*RiskAssessment, error)

	// SuggestTaskStatusUpdates lists in-progress tasks whose deadline has passed
	SuggestTaskStatusUpdates(ctx context.Context, projectID, ownerID string) ([]StatusSuggestion, error)
}
