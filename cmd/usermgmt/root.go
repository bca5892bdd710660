package main

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/usermgmt/internal/identity/app"
)

// configFile is the optional YAML config path shared by all subcommands.
var configFile string

// NewRootCmd creates the root command. Running it without a subcommand
// starts the server.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usermgmt",
		Short: "User management backend",
		Long: `usermgmt registers accounts, issues session tokens and stores one
profile per account. Configuration comes from an optional YAML file,
environment variables and flags, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML)")
	app.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// loadConfig reads configuration using the flags visible to cmd.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	return app.LoadConfig(cmd.Flags(), configFile)
}
