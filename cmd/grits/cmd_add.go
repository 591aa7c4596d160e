package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <files...>",
		Short: "Stage files for the next commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(*logLevel)
			if err != nil {
				return err
			}
			defer syncLogger(r.Logger)

			if err := r.Add(args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "staged %d file(s)\n", len(args))
			return nil
		},
	}
}
