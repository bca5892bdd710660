package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/usermgmt/internal/identity/app"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply store migrations",
		Long:  `Create the tables or indexes for the configured store driver and exit.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cmd.Println("Running migrations...")
	if err := app.Migrate(cmd.Context(), cfg, app.NewLogger(cfg)); err != nil {
		return oops.Code("MIGRATION_FAILED").With("driver", cfg.Store.Driver).Wrap(err)
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
