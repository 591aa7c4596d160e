package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Carlomos7/grits/pkg/logging"
	"github.com/Carlomos7/grits/pkg/repo"
)

func newInitCmd(logLevel *string) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty grits repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if err := os.MkdirAll(abs, 0o755); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}

			logger, err := logging.New(*logLevel)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer syncLogger(logger)

			r, err := repo.Init(abs, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized empty grits repository in %s\n",
				r.GritsDir+string(filepath.Separator))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "path to initialize the repository at")
	return cmd
}
