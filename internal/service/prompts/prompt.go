package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	models "sylo/internal/domain/models/prompts"
	promptsRepo "sylo/internal/domain/repositories/prompts"
	promptsSvc "sylo/internal/domain/services/prompts"
)

// promptService implements the PromptService interface
type promptService struct {
	promptRepo promptsRepo.PromptRepository
	logger     *slog.Logger
}

// NewPromptService creates a new prompt service
func NewPromptService(promptRepo promptsRepo.PromptRepository, logger *slog.Logger) promptsSvc.PromptService {
	return &promptService{
		promptRepo: promptRepo,
		logger:     logger,
	}
}

func (s *promptService) CreatePrompt(ctx context.Context, req *promptsSvc.CreatePromptRequest, ownerID string) (*models.Prompt, error) {
	now := time.Now().UTC()
	prompt := &models.Prompt{
		UserID:    ownerID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	s.logger.Info("prompt created",
		"id", prompt.ID,
		"user_id", ownerID,
		"tags", len(prompt.Tags),
	)

	return prompt, nil
}

func (s *promptService) ListPrompts(ctx context.Context, ownerID string) ([]models.Prompt, error) {
	return s.promptRepo.List(ctx, ownerID)
}

func (s *promptService) GetPrompt(ctx context.Context, id, ownerID string) (*models.Prompt, error) {
	return s.promptRepo.GetByID(ctx, id, ownerID)
}

// UpdatePrompt applies a partial update after checking ownership
func (s *promptService) UpdatePrompt(ctx context.Context, id, ownerID string, req *promptsSvc.UpdatePromptRequest) (*models.Prompt, error) {
	if _, err := s.GetPrompt(ctx, id, ownerID); err != nil {
		return nil, err
	}

	prompt, err := s.promptRepo.Update(ctx, id, ownerID, &models.PromptPatch{
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("prompt updated", "id", id, "user_id", ownerID)
	return prompt, nil
}

// DeletePrompt removes the prompt and echoes it back
func (s *promptService) DeletePrompt(ctx context.Context, id, ownerID string) (*promptsSvc.DeletePromptResult, error) {
	prompt, err := s.GetPrompt(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.promptRepo.Delete(ctx, id, ownerID); err != nil {
		return nil, err
	}

	s.logger.Info("prompt deleted", "id", id, "user_id", ownerID)

	return &promptsSvc.DeletePromptResult{
		Message:       fmt.Sprintf("Prompt with ID %q successfully deleted.", id),
		DeletedPrompt: prompt,
	}, nil
}
