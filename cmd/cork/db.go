package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/corkboard/internal/config"
	"github.com/zulandar/corkboard/internal/db"
	"gorm.io/gorm"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the Corkboard database",
		Long:  "Connects to the configured store, migrates all tables, and seeds the default project, board, columns, and admin user.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Connected to %s store\n", cfg.DB.Driver)

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if err := db.SeedDefaults(gormDB, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded project %q with board %q and admin user %q\n",
		cfg.Seed.Project, cfg.Seed.Board, cfg.Seed.AdminUser)

	fmt.Fprintln(out, "\nCorkboard database initialized successfully.")
	return nil
}

func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s store: %w", cfg.DB.Driver, err)
	}

	return cfg, gormDB, nil
}
