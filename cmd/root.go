package main

import (
	"context"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var rootCmd = &cobra.Command{
	Use:           "practice",
	Short:         "Practice-test backend",
	Long:          "Serves practice question sets, records quiz attempts and keeps per-user proficiency up to date.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(tokenCmd)
}
