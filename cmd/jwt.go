package main

import (
	"artisan/internal/account"
	"artisan/internal/config"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// JWTCommand constructs the 'jwt' subcommand. It signs a bearer token for an
// existing user so operators can call the API on their behalf.
func JWTCommand(cfg *config.Config) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Signs a bearer token for the given user ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := uuid.Parse(subject); err != nil {
				return fmt.Errorf("subject must be a user ID: %w", err)
			}

			issuer, err := account.NewTokenIssuer(cfg.JWT.PrivateKey, cfg.JWT.TTL)
			if err != nil {
				return fmt.Errorf("could not load signing key: %w", err)
			}

			if ttl <= 0 {
				ttl = cfg.JWT.TTL
			}
			signed, err := issuer.IssueFor(subject, ttl)
			if err != nil {
				return fmt.Errorf("could not sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed) //nolint: forbidigo

			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "user ID placed in the sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, defaults to the configured jwt ttl")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
