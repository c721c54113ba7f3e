package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaStatements returns the DDL for the projects, tasks, task_dependencies and prompts tables.
// There are no ON DELETE CASCADE clauses: the services delete edges, then tasks,
// then the project, in that order.
func SchemaStatements(tables *TableNames) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_id_idx ON %s (user_id)`, tables.Projects, tables.Projects),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			project_id UUID NOT NULL REFERENCES %s(id),
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'todo',
			priority TEXT NOT NULL DEFAULT 'medium',
			assigned_to UUID,
			deadline TIMESTAMPTZ,
			ai_risk_score DOUBLE PRECISION,
			ai_priority_boost DOUBLE PRECISION,
			ai_estimated_completion_time DOUBLE PRECISION,
			ai_scheduling_notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, tables.Tasks, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_project_id_idx ON %s (project_id)`, tables.Tasks, tables.Tasks),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			task_id UUID NOT NULL REFERENCES %s(id),
			depends_on_task_id UUID NOT NULL REFERENCES %s(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (task_id, depends_on_task_id)
		)`, tables.TaskDependencies, tables.Tasks, tables.Tasks),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_depends_on_idx ON %s (depends_on_task_id)`, tables.TaskDependencies, tables.TaskDependencies),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, tables.Prompts),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_id_idx ON %s (user_id)`, tables.Prompts, tables.Prompts),
	}
}

// EnsureSchema creates the tables if they do not exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, stmt := range SchemaStatements(tables) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops the tables, dependents first
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Prompts, tables.TaskDependencies, tables.Tasks, tables.Projects} {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
