package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/practice-backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, cfg, err := app.Bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := app.OpenStore(log, cfg)
		if err != nil {
			return err
		}
		log.Info("schema up to date", "driver", store.Driver())
		return store.Close()
	},
}
