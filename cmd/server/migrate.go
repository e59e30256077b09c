package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jobwise/internal/app"
	"jobwise/internal/config"
	dbpostgres "jobwise/internal/database/postgres"
	"jobwise/internal/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending Postgres migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.DBHost == "" || cfg.Database.DBName == "" {
		return fmt.Errorf("migrate: DB_HOST and DB_NAME are required")
	}
	log := logger.New(cfg.Log)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	return app.Migrate(ctx, cfg.Database, db, log)
}
