package cli

import (
	"errors"
	"fmt"
	"time"

	"cash-register/config"
	"cash-register/internal/service"

	"github.com/spf13/cobra"
)

type tokenOptions struct {
	*rootOptions
	expiry time.Duration
}

func newTokenCmd(root *rootOptions) *cobra.Command {
	opts := &tokenOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator JWT with the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return errors.New("jwt.secret is not configured")
			}
			expiry := cfg.JWT.Expiry
			if opts.expiry > 0 {
				expiry = opts.expiry
			}

			tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, expiry, cfg.JWT.Issuer)
			token, expiresAt, err := tokenSvc.Generate(cfg.Auth.OperatorUsername)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().DurationVar(&opts.expiry, "expiry", 0, "Token lifetime (default jwt.expiry)")
	return cmd
}
