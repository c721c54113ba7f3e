package projects

import (
	"time"
)

// ProjectStatus is the caller-supplied lifecycle label of a project.
// The services store it as given; allowed values are checked at the request boundary.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// ProjectStatuses lists every accepted project status
var ProjectStatuses = []ProjectStatus{
	ProjectStatusActive,
	ProjectStatusCompleted,
	ProjectStatusArchived,
}

type Project struct {
	ID          string        `json:"id" db:"id"`
	UserID      string        `json:"user_id" db:"user_id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// ProjectPatch carries a partial project update; nil fields are left unchanged
type ProjectPatch struct {
	Title       *string
	Description *string
	Status      *ProjectStatus
	UpdatedAt   time.Time
}
