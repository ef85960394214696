// Package cli implements cashctl, the operator command line for the cash register.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X cash-register/internal/cli.Version=...".
var Version = "dev"

type rootOptions struct {
	configFile string
}

// NewRootCmd builds the cashctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cashctl",
		Short: "Operator tooling for the cash register service",
		Long: `cashctl prepares and inspects a cash register deployment.

Example Usage:
  cashctl hash-password < secret.txt     # Argon2id hash for auth.operator_password_hash
  cashctl config --config ./config.yaml  # Effective configuration, secrets redacted
  cashctl token                          # Operator JWT signed with jwt.secret`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to the configuration file (default ./config.yaml or ./config/config.yaml)")

	cmd.AddCommand(
		newHashPasswordCmd(),
		newConfigCmd(opts),
		newTokenCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs cashctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cashctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cashctl %s\n", Version)
		},
	}
}
