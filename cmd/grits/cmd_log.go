package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLogCmd(logLevel *string) *cobra.Command {
	var maxEntries int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history",
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
			if !cmd.Flags().Changed("max-entries") {
				maxEntries = cfg.Log.MaxEntries
			}
			if !cfg.UI.Color {
				color.NoColor = true
			}

			head, err := r.Head()
			if err != nil {
				return err
			}
			if head == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no commits yet")
				return nil
			}

			yellow := color.New(color.FgYellow).SprintfFunc()
			out := cmd.OutOrStdout()
			for _, entry := range r.Log(head, maxEntries) {
				fmt.Fprintln(out, yellow("commit %s", entry.Digest))
				fmt.Fprintf(out, "Date:    %s\n", entry.Commit.Timestamp)
				fmt.Fprintf(out, "Message: %s\n", entry.Commit.Message)
				fmt.Fprintln(out, strings.Repeat("-", 50))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxEntries, "max-entries", 0, "maximum number of entries to display (0 = unlimited)")
	return cmd
}
