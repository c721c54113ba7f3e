package prompts

import (
	"context"
	"fmt"

	"sylo/internal/domain"
	models "sylo/internal/domain/models/prompts"
	promptsRepo "sylo/internal/domain/repositories/prompts"
	"sylo/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const promptColumns = "id, user_id, title, content, tags, created_at, updated_at"

// PostgresPromptRepository implements the PromptRepository interface.
// Tags live in a TEXT[] column.
type PostgresPromptRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(config *postgres.RepositoryConfig) promptsRepo.PromptRepository {
	return &PostgresPromptRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new prompt
func (r *PostgresPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Prompts)

	// a nil slice would encode as NULL
	if prompt.Tags == nil {
		prompt.Tags = []string{}
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		prompt.UserID,
		prompt.Title,
		prompt.Content,
		prompt.Tags,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	).Scan(&prompt.ID, &prompt.CreatedAt, &prompt.UpdatedAt)
	if err != nil {
		return domain.NewStoreError("insert prompt", err)
	}

	return nil
}

// GetByID retrieves a prompt by ID and owner
func (r *PostgresPromptRepository) GetByID(ctx context.Context, id, userID string) (*models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, promptColumns, r.tables.Prompts)

	executor := postgres.GetExecutor(ctx, r.pool)
	prompt, err := scanPrompt(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
		}
		return nil, domain.NewStoreError("get prompt", err)
	}

	return prompt, nil
}

// List retrieves all prompts for a user, oldest first
func (r *PostgresPromptRepository) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, promptColumns, r.tables.Prompts)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
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

// Update applies the present patch fields and returns the stored row
func (r *PostgresPromptRepository) Update(ctx context.Context, id, userID string, patch *models.PromptPatch) (*models.Prompt, error) {
	var b postgres.UpdateBuilder
	if patch.Title != nil {
		b.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		b.Set("content", *patch.Content)
	}
	if patch.Tags != nil {
		b.Set("tags", patch.Tags)
	}
	b.Set("updated_at", patch.UpdatedAt)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = %s AND user_id = %s
		RETURNING %s
	`, r.tables.Prompts, b.Clause(), b.Arg(id), b.Arg(userID), promptColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	prompt, err := scanPrompt(executor.QueryRow(ctx, query, b.Args()...))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrUpdateFailed)
		}
		return nil, domain.NewStoreError("update prompt", err)
	}

	return prompt, nil
}

// Delete removes the prompt row
func (r *PostgresPromptRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Prompts)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return domain.NewStoreError("delete prompt", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prompt %s: %w", id, domain.ErrDeleteInconsistency)
	}

	return nil
}

func scanPrompt(row pgx.Row) (*models.Prompt, error) {
	var prompt models.Prompt
	err := row.Scan(
		&prompt.ID,
		&prompt.UserID,
		&prompt.Title,
		&prompt.Content,
		&prompt.Tags,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}
