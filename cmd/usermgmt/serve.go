package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/usermgmt/internal/identity/app"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Connect to the configured store, apply migrations and serve the
HTTP API until SIGINT or SIGTERM.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg)

	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return oops.Code("STARTUP_FAILED").Wrap(err)
	}
	return application.Run(cmd.Context())
}
