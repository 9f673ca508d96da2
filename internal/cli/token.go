package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"survey-builder-service/internal/auth"
	"survey-builder-service/internal/config"
)

// NewTokenCmd issues an editor token signed with auth.jwtSecret.
func NewTokenCmd(configPath *string) *cobra.Command {
	var (
		sessionID string
		ttl       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an editor token for the session API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			authenticator := auth.NewAuthenticator(cfg.Auth.JWTSecret)
			if authenticator == nil {
				return errors.New("auth.jwtSecret not configured")
			}
			token, err := authenticator.IssueToken(sessionID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "limit the token to one session id (default: all sessions)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	return cmd
}
