package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Carlomos7/grits/pkg/repo"
)

func newStatusCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show staged, modified, deleted, and untracked files",
		Args:  cobra.NoArgs,
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

			entries, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "working tree clean")
				return nil
			}

			green := color.New(color.FgGreen)
			yellow := color.New(color.FgYellow)
			red := color.New(color.FgRed)

			for _, e := range entries {
				switch e.State {
				case repo.StateStaged:
					green.Fprintf(out, "+ %s\n", e.Path)
				case repo.StateModified:
					yellow.Fprintf(out, "~ %s\n", e.Path)
				case repo.StateDeleted:
					red.Fprintf(out, "- %s\n", e.Path)
				case repo.StateUntracked:
					fmt.Fprintf(out, "? %s\n", e.Path)
				}
			}
			return nil
		},
	}
}
