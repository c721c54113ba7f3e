package prompts

import (
	"context"

	"sylo/internal/domain/models/prompts"
)

// PromptRepository defines data access operations for the prompts table.
// Every method filters by owner.
type PromptRepository interface {
	// Create inserts a prompt and fills in its generated ID and timestamps
	Create(ctx context.Context, prompt *prompts.Prompt) error

	// GetByID returns domain.ErrNotFound if no row matches both id and owner
	GetByID(ctx context.Context, id, userID string) (*prompts.Prompt, error)

	// List retrieves all prompts for a user
	List(ctx context.Context, userID string) ([]prompts.Prompt, error)

	// Update returns domain.ErrUpdateFailed if no row matched
	Update(ctx context.Context, id, userID string, patch *prompts.PromptPatch) (*prompts.Prompt, error)

	// Delete returns domain.ErrDeleteInconsistency if no row matched
	Delete(ctx context.Context, id, userID string) error
}
