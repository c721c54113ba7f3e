// Package repository selects and opens the record store named by the configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"sylo/internal/config"
	"sylo/internal/domain/repositories"
	projectsRepo "sylo/internal/domain/repositories/projects"
	promptsRepo "sylo/internal/domain/repositories/prompts"
	"sylo/internal/repository/memory"
	"sylo/internal/repository/postgres"
	postgresProjects "sylo/internal/repository/postgres/projects"
	postgresPrompts "sylo/internal/repository/postgres/prompts"
	"sylo/internal/repository/sqlite"
)

// Store bundles the repositories of one record store
type Store struct {
	Projects     projectsRepo.ProjectRepository
	Tasks        projectsRepo.TaskRepository
	Dependencies projectsRepo.TaskDependencyRepository
	Prompts      promptsRepo.PromptRepository
	Tx           repositories.TransactionManager

	// Pool is set only for the postgres driver
	Pool   *pgxpool.Pool
	Tables *postgres.TableNames

	close func()
}

// Close releases the underlying connections
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open opens the store selected by cfg.StoreDriver
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		return openPostgres(ctx, cfg, logger)

	case config.StoreDriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite store opened", "path", cfg.SQLitePath)
		return &Store{
			Projects:     sqlite.NewProjectRepository(db),
			Tasks:        sqlite.NewTaskRepository(db),
			Dependencies: sqlite.NewTaskDependencyRepository(db),
			Prompts:      sqlite.NewPromptRepository(db),
			Tx:           db.TransactionManager(),
			close:        func() { db.Close() },
		}, nil

	case config.StoreDriverMemory:
		mem := memory.NewStore()
		logger.Warn("using in-memory store; data is lost on exit")
		return &Store{
			Projects:     mem.Projects(),
			Tasks:        mem.Tasks(),
			Dependencies: mem.Dependencies(),
			Prompts:      mem.Prompts(),
			Tx:           mem.TransactionManager(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg.SupabaseDBURL == "" {
		return nil, fmt.Errorf("SUPABASE_DB_URL is required for the postgres store")
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL, postgres.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("database connected",
		"max_conns", cfg.DBMaxConns,
		"min_conns", cfg.DBMinConns,
		"table_prefix", cfg.TablePrefix,
	)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	return &Store{
		Projects:     postgresProjects.NewProjectRepository(repoConfig),
		Tasks:        postgresProjects.NewTaskRepository(repoConfig),
		Dependencies: postgresProjects.NewTaskDependencyRepository(repoConfig),
		Prompts:      postgresPrompts.NewPromptRepository(repoConfig),
		Tx:           postgres.NewTransactionManager(repoConfig),
		Pool:         pool,
		Tables:       repoConfig.Tables,
		close:        pool.Close,
	}, nil
}
