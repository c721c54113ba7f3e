package prompts

import (
	"context"

	"sylo/internal/config"
	"sylo/internal/domain/models/prompts"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreatePromptRequest represents a request to create a prompt
type CreatePromptRequest struct {
	Title   string   `json:"title" yaml:"title"`
	Content string   `json:"content" yaml:"content"`
	Tags    []string `json:"tags" yaml:"tags"`
}

func (r *CreatePromptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, config.MaxPromptTitleLength)),
		validation.Field(&r.Content, validation.Required, validation.Length(1, config.MaxPromptContentLength)),
		validation.Field(&r.Tags, validation.Required, validation.Each(tagRules()...)),
	)
}

// UpdatePromptRequest represents a partial prompt update; omitted fields are left unchanged.
// Tags, when present, replace the whole list and cannot be empty.
type UpdatePromptRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Tags    []string `json:"tags"`
}

func (r *UpdatePromptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, config.MaxPromptTitleLength)),
		validation.Field(&r.Content, validation.NilOrNotEmpty, validation.Length(1, config.MaxPromptContentLength)),
		validation.Field(&r.Tags, validation.NilOrNotEmpty, validation.Each(tagRules()...)),
	)
}

func tagRules() []validation.Rule {
	return []validation.Rule{validation.Required, validation.Length(1, config.MaxPromptTagLength)}
}

// DeletePromptResult echoes the prompt as it was before deletion
type DeletePromptResult struct {
	Message       string          `json:"message"`
	DeletedPrompt *prompts.Prompt `json:"deletedPrompt"`
}

// PromptService manages a user's prompt library. Every call is scoped to the owner.
type PromptService interface {
	CreatePrompt(ctx context.Context, req *CreatePromptRequest, ownerID string) (*prompts.Prompt, error)
	ListPrompts(ctx context.Context, ownerID string) ([]prompts.Prompt, error)

	// GetPrompt returns domain.ErrNotFound if missing or not owned
	GetPrompt(ctx context.Context, id, ownerID string) (*prompts.Prompt, error)

	// UpdatePrompt checks ownership then applies a partial update
	UpdatePrompt(ctx context.Context, id, ownerID string, req *UpdatePromptRequest) (*prompts.Prompt, error)

	DeletePrompt(ctx context.Context, id, ownerID string) (*DeletePromptResult, error)
}
