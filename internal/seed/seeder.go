package seed

import (
	"context"
	"fmt"
	"log/slog"

	projectsSvc "sylo/internal/domain/services/projects"
	promptsSvc "sylo/internal/domain/services/prompts"
)

// UserResolver maps a fixture email to an owner id
type UserResolver interface {
	EnsureUser(ctx context.Context, email, password string) (string, error)
}

// Seeder creates fixtures through the managers, so defaults and
// ownership checks apply exactly as they do for API requests.
type Seeder struct {
	projects     projectsSvc.ProjectService
	tasks        projectsSvc.TaskService
	dependencies projectsSvc.DependencyService
	prompts      promptsSvc.PromptService
	users        UserResolver // nil when only id users are allowed
	logger       *slog.Logger
}

// NewSeeder creates a seeder
func NewSeeder(
	projects projectsSvc.ProjectService,
	tasks projectsSvc.TaskService,
	dependencies projectsSvc.DependencyService,
	prompts promptsSvc.PromptService,
	users UserResolver,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		projects:     projects,
		tasks:        tasks,
		dependencies: dependencies,
		prompts:      prompts,
		users:        users,
		logger:       logger,
	}
}

// Result counts what was created
type Result struct {
	Projects     int
	Tasks        int
	Dependencies int
	Prompts      int
}

// Seed creates every project, task, dependency and prompt in the fixture.
// It stops at the first failure; rows created before it remain.
func (s *Seeder) Seed(ctx context.Context, f *Fixture) (*Result, error) {
	var res Result
	for _, u := range f.Users {
		ownerID, err := s.resolveUser(ctx, u)
		if err != nil {
			return &res, err
		}

		for _, pf := range u.Projects {
			req := pf.CreateProjectRequest
			if err := req.Validate(); err != nil {
				return &res, fmt.Errorf("project %q: %w", pf.Title, err)
			}
			req.ApplyDefaults()

			project, err := s.projects.CreateProject(ctx, &req, ownerID)
			if err != nil {
				return &res, fmt.Errorf("create project %q: %w", pf.Title, err)
			}
			res.Projects++

			taskIDs := make(map[string]string, len(pf.Tasks))
			for _, tf := range pf.Tasks {
				treq := tf.CreateTaskRequest
				treq.ProjectID = project.ID
				if err := treq.Validate(); err != nil {
					return &res, fmt.Errorf("task %q: %w", tf.Title, err)
				}
				treq.ApplyDefaults()

				task, err := s.tasks.CreateTask(ctx, &treq, ownerID)
				if err != nil {
					return &res, fmt.Errorf("create task %q: %w", tf.Title, err)
				}
				res.Tasks++
				if tf.Key != "" {
					taskIDs[tf.Key] = task.ID
				}
			}

			// Edges after all tasks so depends_on may point forward
			for _, tf := range pf.Tasks {
				for _, dep := range tf.DependsOn {
					if _, err := s.dependencies.CreateDependency(ctx, taskIDs[tf.Key], taskIDs[dep], project.ID, ownerID); err != nil {
						return &res, fmt.Errorf("create dependency %s -> %s: %w", tf.Key, dep, err)
					}
					res.Dependencies++
				}
			}

			s.logger.Info("project seeded",
				"id", project.ID,
				"title", project.Title,
				"tasks", len(pf.Tasks),
			)
		}

		for _, preq := range u.Prompts {
			if err := preq.Validate(); err != nil {
				return &res, fmt.Errorf("prompt %q: %w", preq.Title, err)
			}
			if _, err := s.prompts.CreatePrompt(ctx, &preq, ownerID); err != nil {
				return &res, fmt.Errorf("create prompt %q: %w", preq.Title, err)
			}
			res.Prompts++
		}
	}
	return &res, nil
}

func (s *Seeder) resolveUser(ctx context.Context, u UserFixture) (string, error) {
	if u.ID != "" {
		return u.ID, nil
	}
	if s.users == nil {
		return "", fmt.Errorf("user %s: email users need SUPABASE_URL and SUPABASE_KEY", u.Email)
	}
	id, err := s.users.EnsureUser(ctx, u.Email, u.Password)
	if err != nil {
		return "", fmt.Errorf("resolve user %s: %w", u.Email, err)
	}
	return id, nil
}
