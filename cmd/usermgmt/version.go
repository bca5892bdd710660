package main

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/usermgmt/internal/identity/app"
)

// NewVersionCmd creates the version subcommand.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(app.BuildVersion)
			return nil
		},
	}
}
