package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/practice-backend/internal/app"
	"github.com/yungbote/practice-backend/internal/services"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue a bearer token for a user (local testing)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")

		log, cfg, err := app.Bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		identity, err := services.NewIdentityService(log, cfg.JWTSecretKey)
		if err != nil {
			return err
		}
		tok, err := identity.IssueToken(userID, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", time.Hour, "Token lifetime; 0 issues a token without expiry")
}
