// Package main implements the entry point for the blog API server
// which handles user accounts, blog post publishing and file uploads.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/tobenna/blog-api/internal/config"
	"github.com/tobenna/blog-api/internal/platform/logger"
)

// main is the entry point for the blog-api server. It initializes
// configuration, sets up logging, establishes the database connection,
// runs pending migrations, injects dependencies and starts the HTTP
// server.
func main() {
	ctx := context.Background()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to set up database", "error", err)
		log.Fatalf("Failed to set up database: %v", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		appLogger.Error("Failed to run database migrations", "error", err)
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		appLogger.Error("Failed to build application", "error", err)
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		log.Fatalf("Server exited with error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
// Returns the loaded config, the application logger and any
// initialization error.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.Auth.JWTSecret != "" {
		slog.Debug("Auth configuration", "jwt_secret_present", true)
	}

	return cfg, appLogger, nil
}
