package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Carlomos7/grits/pkg/diff"
	"github.com/Carlomos7/grits/pkg/object"
	"github.com/Carlomos7/grits/pkg/repo"
)

func newShowCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <commit>",
		Short: "Show commit metadata and its diff against the parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(*logLevel)
			if err != nil {
				return err
			}
			defer syncLogger(r.Logger)

			cfg, err := r.ReadConfig()
			if err != nil {
				return err
			}
			if !cfg.UI.Color {
				color.NoColor = true
			}

			d, err := resolveCommitish(r, args[0])
			if err != nil {
				return err
			}

			c, changes, err := r.ShowDiff(d)
			if err != nil {
				return err
			}

			yellow := color.New(color.FgYellow).SprintfFunc()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, yellow("commit %s", d))
			fmt.Fprintf(out, "Date:    %s\n", c.Timestamp)
			fmt.Fprintf(out, "Message: %s\n", c.Message)

			cyan := color.New(color.FgCyan)
			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)

			for _, change := range changes {
				fmt.Fprintln(out)
				switch change.Kind {
				case repo.ChangeNew:
					cyan.Fprintf(out, "New file: %s\n", change.Path)
					for _, line := range diff.SplitLines(change.Text) {
						green.Fprintf(out, "+ %s\n", strings.TrimSuffix(line, "\n"))
					}
				case repo.ChangeModified:
					cyan.Fprintf(out, "Modified: %s\n", change.Path)
					for _, line := range strings.Split(strings.TrimSuffix(change.Text, "\n"), "\n") {
						switch {
						case strings.HasPrefix(line, "+"):
							green.Fprintln(out, line)
						case strings.HasPrefix(line, "-"):
							red.Fprintln(out, line)
						case strings.HasPrefix(line, "@"):
							cyan.Fprintln(out, line)
						default:
							fmt.Fprintln(out, line)
						}
					}
				}
			}
			return nil
		},
	}
}

// resolveCommitish maps "HEAD" (or a raw digest) to a commit digest.
func resolveCommitish(r *repo.Repo, target string) (object.Digest, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("empty commit reference")
	}
	if target == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return "", err
		}
		if head == "" {
			return "", repo.ErrInvalidCommitTarget
		}
		return head, nil
	}
	return object.Digest(target), nil
}
