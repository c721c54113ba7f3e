package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sylo/internal/auth"
	"sylo/internal/config"
	"sylo/internal/handler"
	"sylo/internal/metrics"
	"sylo/internal/middleware"
	"sylo/internal/repository"
	authService "sylo/internal/service/auth"
	projectsService "sylo/internal/service/projects"
	promptsService "sylo/internal/service/prompts"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_driver", cfg.StoreDriver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// JWT verification; optional only for dev runs with DEV_USER_ID on a local store
	var jwtVerifier auth.JWTVerifier
	if cfg.SupabaseJWKSURL != "" {
		jwtVerifier, err = auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
	} else if !cfg.AllowDevAuth() {
		log.Fatal("SUPABASE_URL is required unless ENVIRONMENT=dev with DEV_USER_ID on a local store")
	}

	var devUserID string
	if cfg.AllowDevAuth() {
		devUserID = cfg.DevUserID
		logger.Warn("DEV AUTH: unauthenticated requests act as DEV_USER_ID (NEVER use in production!)",
			"user_id", devUserID,
		)
	}

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()

	// Managers
	projectService := projectsService.NewProjectService(store.Projects, store.Tasks, store.Dependencies, store.Tx, logger)
	taskService := projectsService.NewTaskService(store.Projects, store.Tasks, store.Dependencies, store.Tx, logger)
	dependencyService := projectsService.NewDependencyService(taskService, store.Tasks, store.Dependencies, logger)
	insightService := projectsService.NewInsightService(taskService, logger)
	promptService := promptsService.NewPromptService(store.Prompts, logger)
	authorizer := authService.NewOwnerBasedAuthorizer(store.Projects, store.Tasks)

	logger.Info("services initialized")

	m := metrics.NewMetrics()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Handlers{
		Projects:     handler.NewProjectHandler(projectService, authorizer, logger),
		Tasks:        handler.NewTaskHandler(taskService, logger),
		Dependencies: handler.NewDependencyHandler(dependencyService, logger),
		Insights:     handler.NewInsightHandler(insightService, logger),
		Prompts:      handler.NewPromptHandler(promptService, logger),
		Metrics:      metrics.Handler(),
	})

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Metrics → Routes
	h = middleware.Metrics(m)(h)
	h = middleware.AuthMiddleware(jwtVerifier, middleware.AuthOptions{
		PublicPaths: []string{"/health", "/metrics"},
		DevUserID:   devUserID,
		Metrics:     m,
		Logger:      logger,
	})(h)
	h = middleware.Recovery(logger, m)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
