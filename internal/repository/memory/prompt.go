package memory

import (
	"context"
	"fmt"
	"slices"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/prompts"
)

// PromptRepository implements prompts.PromptRepository
type PromptRepository struct {
	store *Store
}

func (r *PromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prompt.ID = s.newID()
	if prompt.CreatedAt.IsZero() {
		prompt.CreatedAt = s.now()
	}
	if prompt.UpdatedAt.IsZero() {
		prompt.UpdatedAt = prompt.CreatedAt
	}

	s.prompts[prompt.ID] = clonePrompt(prompt)
	s.promptOrder = append(s.promptOrder, prompt.ID)
	return nil
}

func (r *PromptRepository) GetByID(ctx context.Context, id, userID string) (*models.Prompt, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.prompts[id]
	if !ok || row.UserID != userID {
		return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}
	return clonePrompt(row), nil
}

func (r *PromptRepository) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	prompts := []models.Prompt{}
	for _, id := range s.promptOrder {
		if row := s.prompts[id]; row.UserID == userID {
			prompts = append(prompts, *clonePrompt(row))
		}
	}
	return prompts, nil
}

func (r *PromptRepository) Update(ctx context.Context, id, userID string, patch *models.PromptPatch) (*models.Prompt, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.prompts[id]
	if !ok || row.UserID != userID {
		return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrUpdateFailed)
	}
	patch.Apply(row)
	return clonePrompt(row), nil
}

func (r *PromptRepository) Delete(ctx context.Context, id, userID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.prompts[id]
	if !ok || row.UserID != userID {
		return fmt.Errorf("prompt %s: %w", id, domain.ErrDeleteInconsistency)
	}
	delete(s.prompts, id)
	s.promptOrder = removeIDs(s.promptOrder, map[string]bool{id: true})
	return nil
}

// clonePrompt copies p including its tag slice
func clonePrompt(p *models.Prompt) *models.Prompt {
	out := *p
	out.Tags = slices.Clone(p.Tags)
	return &out
}
