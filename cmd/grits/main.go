package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Carlomos7/grits/pkg/logging"
	"github.com/Carlomos7/grits/pkg/repo"
)

func main() {
	var logLevel string

	root := &cobra.Command{
		Use:           "grits",
		Short:         "A simple local version-control system",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(&logLevel))
	root.AddCommand(newAddCmd(&logLevel))
	root.AddCommand(newStatusCmd(&logLevel))
	root.AddCommand(newCommitCmd(&logLevel))
	root.AddCommand(newLogCmd(&logLevel))
	root.AddCommand(newShowCmd(&logLevel))
	root.AddCommand(newRestoreCmd(&logLevel))
	root.AddCommand(newVerifyCmd(&logLevel))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("grits 0.1.0-dev")
		},
	}
}

// openRepo locates the enclosing repository and opens it with a logger
// that tees to stderr and to .grits/grits.log.
func openRepo(logLevel string) (*repo.Repo, error) {
	root, err := repo.Find(".")
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewWithFile(logLevel, filepath.Join(root, ".grits", "grits.log"))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return repo.Open(root, logger)
}

// syncLogger flushes buffered log output; sync errors on closed stderr
// are not actionable.
func syncLogger(logger *zap.Logger) {
	_ = logger.Sync()
}
