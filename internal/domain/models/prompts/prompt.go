package prompts

import (
	"slices"
	"time"
)

// Prompt is a reusable text snippet owned by one user
type Prompt struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Tags      []string  `json:"tags" db:"tags"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PromptPatch carries a partial prompt update; nil fields are left unchanged
type PromptPatch struct {
	Title     *string
	Content   *string
	Tags      []string
	UpdatedAt time.Time
}

// Apply copies the present patch fields onto p
func (patch *PromptPatch) Apply(p *Prompt) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Tags != nil {
		p.Tags = slices.Clone(patch.Tags)
	}
	p.UpdatedAt = patch.UpdatedAt
}
