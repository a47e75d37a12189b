package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/practice-backend/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the reconcile schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Start()
	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	a.Log.Info("shutdown complete")
	return nil
}
