package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/routinely/routinely/internal/config"
	"github.com/routinely/routinely/internal/db"
	"github.com/routinely/routinely/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")

	rootCmd := &cobra.Command{
		Use:   "db",
		Short: "Database migration tools for routinely",
	}

	rootCmd.AddCommand(upCmd(cfg))
	rootCmd.AddCommand(downCmd(cfg))
	rootCmd.AddCommand(statusCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func upCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer db.Close(database)

			return db.RunMigrations(database.DB, cfg.DBDriver)
		},
	}
}

func downCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer db.Close(database)

			return db.MigrateDown(database.DB, cfg.DBDriver)
		},
	}
}

func statusCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer db.Close(database)

			return db.MigrationStatus(database.DB, cfg.DBDriver)
		},
	}
}
