package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/prompts"
	promptsRepo "sylo/internal/domain/repositories/prompts"
)

const promptColumns = "id, user_id, title, content, tags, created_at, updated_at"

// promptRepository stores tags as a JSON array in a TEXT column
type promptRepository struct {
	db *DB
}

// NewPromptRepository creates a prompt repository on db
func NewPromptRepository(db *DB) promptsRepo.PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	tags, err := json.Marshal(prompt.Tags)
	if err != nil {
		return domain.NewStoreError("encode prompt tags", err)
	}

	prompt.ID = r.db.newID()
	_, err = r.db.executor(ctx).ExecContext(ctx, `
		INSERT INTO prompts (id, user_id, title, content, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, prompt.ID, prompt.UserID, prompt.Title, prompt.Content, string(tags),
		prompt.CreatedAt, prompt.UpdatedAt)
	if err != nil {
		return domain.NewStoreError("insert prompt", err)
	}
	return nil
}

func (r *promptRepository) GetByID(ctx context.Context, id, userID string) (*models.Prompt, error) {
	row := r.db.executor(ctx).QueryRowContext(ctx,
		"SELECT "+promptColumns+" FROM prompts WHERE id = ? AND user_id = ?", id, userID)
	prompt, err := scanPrompt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
		}
		return nil, domain.NewStoreError("get prompt", err)
	}
	return prompt, nil
}

func (r *promptRepository) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	rows, err := r.db.executor(ctx).QueryContext(ctx,
		"SELECT "+promptColumns+" FROM prompts WHERE user_id = ? ORDER BY created_at ASC", userID)
	if err != nil {
		return nil, domain.NewStoreError("list prompts", err)
	}
	defer rows.Close()

	prompts := []models.Prompt{}
	for rows.Next() {
		prompt, err := scanPrompt(rows)
		if err != nil {
			return nil, domain.NewStoreError("scan prompt", err)
		}
		prompts = append(prompts, *prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate prompts", err)
	}
	return prompts, nil
}

func (r *promptRepository) Update(ctx context.Context, id, userID string, patch *models.PromptPatch) (*models.Prompt, error) {
	var sets []string
	var args []any
	if patch.Title != nil {
		sets, args = append(sets, "title = ?"), append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets, args = append(sets, "content = ?"), append(args, *patch.Content)
	}
	if patch.Tags != nil {
		tags, err := json.Marshal(patch.Tags)
		if err != nil {
			return nil, domain.NewStoreError("encode prompt tags", err)
		}
		sets, args = append(sets, "tags = ?"), append(args, string(tags))
	}
	sets, args = append(sets, "updated_at = ?"), append(args, patch.UpdatedAt)
	args = append(args, id, userID)

	query := fmt.Sprintf("UPDATE prompts SET %s WHERE id = ? AND user_id = ? RETURNING %s",
		strings.Join(sets, ", "), promptColumns)
	prompt, err := scanPrompt(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrUpdateFailed)
		}
		return nil, domain.NewStoreError("update prompt", err)
	}
	return prompt, nil
}

func (r *promptRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.executor(ctx).ExecContext(ctx,
		"DELETE FROM prompts WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return domain.NewStoreError("delete prompt", err)
	}
	return checkDeleted(res, "prompt", id)
}

func scanPrompt(row scanner) (*models.Prompt, error) {
	var prompt models.Prompt
	var tags string
	err := row.Scan(
		&prompt.ID,
		&prompt.UserID,
		&prompt.Title,
		&prompt.Content,
		&tags,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &prompt.Tags); err != nil {
		return nil, fmt.Errorf("decode prompt tags: %w", err)
	}
	return &prompt, nil
}
