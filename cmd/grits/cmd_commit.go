package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Carlomos7/grits/pkg/object"
	"github.com/Carlomos7/grits/pkg/repo"
)

func newCommitCmd(logLevel *string) *cobra.Command {
	var message string
	var sign bool
	var signKey string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record staged changes as a new commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit message is required (-m)")
			}

			r, err := openRepo(*logLevel)
			if err != nil {
				return err
			}
			defer syncLogger(r.Logger)

			d, err := r.CreateCommit(message)
			if err != nil {
				return err
			}

			if sign {
				if err := signCommit(r, d, signKey); err != nil {
					return fmt.Errorf("commit %s created but signing failed: %w", d.Short(), err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created commit %s\n", d.Short())
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().BoolVarP(&sign, "sign", "S", false, "sign the commit with an SSH key")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "SSH private key to sign with (default: config signing.key, then ~/.ssh)")
	return cmd
}

// signCommit produces a detached SSH signature over the commit digest
// and stores it under the control directory.
func signCommit(r *repo.Repo, d object.Digest, keyPath string) error {
	if keyPath == "" {
		cfg, err := r.ReadConfig()
		if err != nil {
			return err
		}
		keyPath = cfg.Signing.Key
	}

	signer, _, err := newSSHSigner(keyPath)
	if err != nil {
		return err
	}

	signature, err := signCommitPayload(signer, []byte(d))
	if err != nil {
		return err
	}
	return r.StoreSignature(d, signature)
}
