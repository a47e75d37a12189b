package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/practice-backend/internal/app"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute learning-area and course proficiency for every user",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, cfg, err := app.Bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
			cfg.ReconcileConcurrency = n
		}
		stats, err := app.Reconcile(cmd.Context(), log, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "users=%d learning_areas=%d courses=%d failed=%d\n",
			stats.Users, stats.LearningAreas, stats.Courses, stats.Failed)
		return nil
	},
}

func init() {
	reconcileCmd.Flags().Int("concurrency", 0, "Users reconciled in parallel (overrides PROFICIENCY_RECONCILE_CONCURRENCY)")
}
