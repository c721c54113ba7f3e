// Package seed loads YAML fixtures of projects, tasks, dependencies and prompts
// and creates them through the managers.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	projectsSvc "sylo/internal/domain/services/projects"
	promptsSvc "sylo/internal/domain/services/prompts"
)

// Fixture is the root of a seed file
type Fixture struct {
	Users []UserFixture `yaml:"users"`
}

// UserFixture names an owner either by id or by email.
// Email users are resolved (or created) through the Supabase Admin API.
type UserFixture struct {
	ID       string           `yaml:"id"`
	Email    string           `yaml:"email"`
	Password string           `yaml:"password"`
	Projects []ProjectFixture                `yaml:"projects"`
	Prompts  []promptsSvc.CreatePromptRequest `yaml:"prompts"`
}

// ProjectFixture is a project with its tasks
type ProjectFixture struct {
	projectsSvc.CreateProjectRequest `yaml:",inline"`
	Tasks                            []TaskFixture `yaml:"tasks"`
}

// TaskFixture is a task; Key names it for depends_on references within the project
type TaskFixture struct {
	Key                           string   `yaml:"key"`
	DependsOn                     []string `yaml:"depends_on"`
	projectsSvc.CreateTaskRequest `yaml:",inline"`
}

// LoadFixture reads and checks a fixture file
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML and checks that every depends_on key exists
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	for i, u := range f.Users {
		if u.ID == "" && u.Email == "" {
			return nil, fmt.Errorf("user %d: id or email is required", i)
		}
		for _, p := range u.Projects {
			keys := make(map[string]bool, len(p.Tasks))
			for _, t := range p.Tasks {
				if t.Key != "" {
					if keys[t.Key] {
						return nil, fmt.Errorf("project %q: duplicate task key %q", p.Title, t.Key)
					}
					keys[t.Key] = true
				}
			}
			for _, t := range p.Tasks {
				if len(t.DependsOn) > 0 && t.Key == "" {
					return nil, fmt.Errorf("project %q: task %q has depends_on but no key", p.Title, t.Title)
				}
				for _, dep := range t.DependsOn {
					if !keys[dep] {
						return nil, fmt.Errorf("project %q: task %q depends on unknown key %q", p.Title, t.Title, dep)
					}
				}
			}
		}
	}
	return &f, nil
}
