package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tobenna/blog-api/internal/config"
	"github.com/tobenna/blog-api/internal/platform/postgres"
	"github.com/tobenna/blog-api/internal/platform/storage"
	"github.com/tobenna/blog-api/internal/service/auth"
	"github.com/tobenna/blog-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	blogStore store.BlogStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier

	// File storage backend for uploads
	fileStore storage.FileStore
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password services
	app.passwordHasher = auth.NewBcryptHasher(0)
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.blogStore = postgres.NewPostgresBlogStore(db, logger)

	// Initialize local file storage for uploaded images
	app.fileStore = storage.NewLocalStore(cfg.Upload.Dir, logger)
	logger.Info("File storage initialized", "dir", cfg.Upload.Dir)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
