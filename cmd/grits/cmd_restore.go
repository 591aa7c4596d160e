package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carlomos7/grits/pkg/repo"
)

func newRestoreCmd(logLevel *string) *cobra.Command {
	var source string
	var staged bool
	var hard bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore files from a commit or the staging area",
		Long: `Restore files or working tree state.

Examples:
  grits restore file.txt               restore file from HEAD
  grits restore --source <commit> f.go restore file from a commit
  grits restore --staged file.txt      restore file from the staging area
  grits restore --hard                 discard all local changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(*logLevel)
			if err != nil {
				return err
			}
			defer syncLogger(r.Logger)

			if hard {
				if !yes && !confirm(cmd, "This will discard all local changes. Continue?") {
					return nil
				}
				if err := r.RestoreHard(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "restored working tree to HEAD")
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("either specify paths or use --hard")
			}

			opts := repo.RestoreOptions{
				Staged: staged,
				Paths:  args,
			}
			if source != "" {
				d, err := resolveCommitish(r, source)
				if err != nil {
					return err
				}
				opts.Source = d
			}

			n, err := r.Restore(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d file(s)\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "commit to restore from (default HEAD)")
	cmd.Flags().BoolVar(&staged, "staged", false, "restore from the staging area instead of a commit")
	cmd.Flags().BoolVar(&hard, "hard", false, "discard all local changes and match HEAD exactly")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm prompts on stdout and reads a y/N answer from stdin.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
