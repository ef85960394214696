package cli

import (
	"fmt"

	"cash-register/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const redacted = "<redacted>"

type configOptions struct {
	*rootOptions
	showSecrets bool
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	opts := &configOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration the API server would run with: defaults, the
config file and CRG_ environment overrides merged and validated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if !opts.showSecrets {
				redactSecrets(cfg)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&opts.showSecrets, "show-secrets", false, "Print passwords and the JWT secret in clear text")
	return cmd
}

func redactSecrets(cfg *config.Config) {
	for _, s := range []*string{&cfg.Database.Password, &cfg.Redis.Password, &cfg.JWT.Secret, &cfg.Kafka.SigningSecret} {
		if *s != "" {
			*s = redacted
		}
	}
}
