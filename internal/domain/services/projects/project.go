package projects

import (
	"context"
	"strings"

	"sylo/internal/config"
	"sylo/internal/domain/models/projects"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Title       string                 `json:"title" yaml:"title"`
	Description string                 `json:"description" yaml:"description"`
	Status      projects.ProjectStatus `json:"status" yaml:"status"`
}

// Validate checks the request at the HTTP boundary. The service stores whatever it is given.
func (r *CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			validation.Length(1, config.MaxProjectTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&r.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&r.Status, validation.In(projectStatusValues()...)),
	)
}

// ApplyDefaults fills in the status default
func (r *CreateProjectRequest) ApplyDefaults() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Status == "" {
		r.Status = projects.ProjectStatusActive
	}
}

// UpdateProjectRequest represents a partial project update; nil fields are left unchanged
type UpdateProjectRequest struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	Status      *projects.ProjectStatus `json:"status"`
}

func (r *UpdateProjectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxProjectTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&r.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&r.Status, validation.In(projectStatusValues()...)),
	)
}

// DeleteProjectResult echoes the project as it was before deletion
type DeleteProjectResult struct {
	Message        string            `json:"message"`
	DeletedProject *projects.Project `json:"deletedProject"`
}

// ProjectService owns the project lifecycle. Every call is scoped to the owner.
type ProjectService interface {
	// CreateProject inserts a project owned by ownerID
	CreateProject(ctx context.Context, req *CreateProjectRequest, ownerID string) (*projects.Project, error)

	// ListProjects retrieves all projects of ownerID
	ListProjects(ctx context.Context, ownerID string) ([]projects.Project, error)

	// GetProject retrieves a project; domain.ErrNotFound if missing or not owned
	GetProject(ctx context.Context, id, ownerID string) (*projects.Project, error)

	// UpdateProject checks ownership then applies a partial update
	UpdateProject(ctx context.Context, id, ownerID string, req *UpdateProjectRequest) (*projects.Project, error)

	// DeleteProject removes the project, its tasks and every edge touching those tasks
	DeleteProject(ctx context.Context, id, ownerID string) (*DeleteProjectResult, error)
}

func projectStatusValues() []interface{} {
	values := make([]interface{}, len(projects.ProjectStatuses))
	for i, s := range projects.ProjectStatuses {
		values[i] = s
	}
	return values
}
