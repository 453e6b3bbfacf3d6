package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// SetupDatabase creates the config file when missing, then initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if err := r.loadConfig(configPath); err != nil {
			r.logger.Warn("failed to load created config, using defaults", "error", err)
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	if err := r.open(); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(r.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, err := shared.CurrentVersion(r.db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ Database ready at %s (schema version %d)\n", r.config.Database.Path, version)
}

// SetupStatus reports the database path, schema version and song count.
func (r *Runner) SetupStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	version, applied, err := shared.CurrentVersion(r.db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	r.writePlain("Config:   %s\n", r.configPath)
	r.writePlain("Database: %s\n", r.config.Database.Path)
	if !applied {
		return r.writePlain("Schema:   not initialized (run 'harmony setup database')\n")
	}
	r.writePlain("Schema:   version %d\n", version)

	songs, err := r.songs.List(map[string]any{})
	if err != nil {
		return fmt.Errorf("failed to count songs: %w", err)
	}
	libraries, err := r.libraries.List(map[string]any{})
	if err != nil {
		return fmt.Errorf("failed to count libraries: %w", err)
	}
	return r.writePlain("Songs:    %d\nLibraries: %d\n", len(songs), len(libraries))
}

// SetupRollback reverts the most recent migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	if err := shared.RollbackMigration(r.db); err != nil {
		return err
	}

	version, applied, err := shared.CurrentVersion(r.db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if !applied {
		return r.writePlain("✓ Rolled back every migration\n")
	}
	return r.writePlain("✓ Rolled back to schema version %d\n", version)
}
