// Package main implements the entry point for the catalog API server, which
// manages each user's products, categories and stock records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/catalog-api/internal/config"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command and exit ("+strings.Join(postgres.MigrationCommands, "|")+")",
	)
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		log.Fatalf("catalog-api: %v", err)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until a shutdown signal arrives.
func run(ctx context.Context, migrateCmd string) error {
	cfg, l, err := initializeApp()
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				l.Error("failed to close database connection", "error", cerr)
			}
		}()
		if err := postgres.Migrate(ctx, db, migrateCmd, l); err != nil {
			return fmt.Errorf("migration %q failed: %w", migrateCmd, err)
		}
		return nil
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		_ = db.Close()
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"pid", os.Getpid())
	l.Debug("Auth configuration",
		"jwt_secret_present", cfg.Auth.JWTSecret != "",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	return cfg, l, nil
}
