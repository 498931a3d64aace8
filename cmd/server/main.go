package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-platform-api/internal/api"
	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/blobstore"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/service"
	"github.com/blog-platform-api/internal/supabase"
	"github.com/blog-platform-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New(logger.Options{Level: os.Getenv("LOG_LEVEL")})
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Info().Msg("Starting blog platform API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// External collaborators: identity provider and thumbnail storage
	supabaseClient := supabase.NewClient(cfg.Auth.SupabaseURL, cfg.Auth.SupabaseKey)
	gate := auth.NewGate(supabaseClient, cfg.Auth.VerifyTimeout, log)

	var blobs blobstore.Store = supabaseClient
	if cfg.Storage.Backend == config.StorageBackendLocal {
		blobs = blobstore.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL)
	}
	log.Info().
		Str("backend", cfg.Storage.Backend).
		Str("bucket", cfg.Storage.Bucket).
		Msg("Thumbnail storage configured")

	// Initialize repositories and services
	repos := repository.New(db)
	services := service.NewServices(repos, blobs, cfg, log)

	// Initialize router
	router := api.NewRouter(services, gate, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
