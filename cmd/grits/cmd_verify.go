package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"golang.org/x/crypto/ssh"
)

func newVerifyCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <commit>",
		Short: "Verify a commit's SSH signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(*logLevel)
			if err != nil {
				return err
			}
			defer syncLogger(r.Logger)

			d, err := resolveCommitish(r, args[0])
			if err != nil {
				return err
			}

			// Ensure the commit itself exists and parses.
			if _, err := r.GetCommit(d); err != nil {
				return err
			}

			encoded, err := r.LoadSignature(d)
			if err != nil {
				return err
			}

			pub, err := verifyCommitSignature(encoded, []byte(d))
			if err != nil {
				return fmt.Errorf("commit %s: %w", d.Short(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "good signature on %s (%s %s)\n",
				d.Short(), pub.Type(), ssh.FingerprintSHA256(pub))
			return nil
		},
	}
}
