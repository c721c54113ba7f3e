package main

import (
	"context"
	"flag"
	"log"

	"sylo/internal/auth"
	"sylo/internal/config"
	"sylo/internal/repository"
	"sylo/internal/repository/postgres"
	"sylo/internal/seed"
	projectsService "sylo/internal/service/projects"
	promptsService "sylo/internal/service/prompts"

	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't load the fixture")
	fixturePath := flag.String("fixture", "scripts/seed.yaml", "YAML fixture of users, projects, tasks, dependencies and prompts")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()

	// SQLite applies its schema on open and memory has none
	if store.Pool != nil {
		if *dropTables {
			log.Printf("Dropping tables (prefix: %q)...", cfg.TablePrefix)
			if err := postgres.DropSchema(ctx, store.Pool, store.Tables); err != nil {
				log.Fatalf("Failed to drop tables: %v", err)
			}
		}
		log.Println("Ensuring database schema is up to date...")
		if err := postgres.EnsureSchema(ctx, store.Pool, store.Tables); err != nil {
			log.Fatalf("Failed to run schema: %v", err)
		}
	}

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	fixture, err := seed.LoadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	projectService := projectsService.NewProjectService(store.Projects, store.Tasks, store.Dependencies, store.Tx, logger)
	taskService := projectsService.NewTaskService(store.Projects, store.Tasks, store.Dependencies, store.Tx, logger)
	dependencyService := projectsService.NewDependencyService(taskService, store.Tasks, store.Dependencies, logger)
	promptService := promptsService.NewPromptService(store.Prompts, logger)

	var users seed.UserResolver
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		users = auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	}

	res, err := seed.NewSeeder(projectService, taskService, dependencyService, promptService, users, logger).Seed(ctx, fixture)
	if err != nil {
		log.Fatalf("Seeding failed after %d projects, %d tasks, %d dependencies: %v",
			res.Projects, res.Tasks, res.Dependencies, err)
	}

	log.Printf("Seeding complete: %d projects, %d tasks, %d dependencies, %d prompts",
		res.Projects, res.Tasks, res.Dependencies, res.Prompts)
}
