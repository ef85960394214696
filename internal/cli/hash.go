package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"cash-register/internal/service"

	"github.com/spf13/cobra"
)

type hashOptions struct {
	password string
	verify   string
}

func newHashPasswordCmd() *cobra.Command {
	opts := &hashOptions{}

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash an operator password with Argon2id",
		Long: `Hash an operator password with Argon2id.

The password is read from --password or, when omitted, from the first line of
stdin. With --verify the password is checked against an existing hash instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password := opts.password
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given on --password or stdin")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			hashSvc := service.NewArgon2HashService()
			if opts.verify != "" {
				ok, err := hashSvc.Verify(password, opts.verify)
				if err != nil {
					return fmt.Errorf("verify: %w", err)
				}
				if !ok {
					return errors.New("password does not match hash")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}

			hash, err := hashSvc.Hash(password)
			if err != nil {
				return fmt.Errorf("hash: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.password, "password", "", "Password to hash (read from stdin when empty)")
	cmd.Flags().StringVar(&opts.verify, "verify", "", "Existing Argon2id hash to check the password against")
	return cmd
}
