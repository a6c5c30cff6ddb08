package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/buildinfo"
	plog "github.com/pennywise-app/pennywise/internal/log"
	"github.com/pennywise-app/pennywise/internal/runlog"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "pennywise",
		Short:   "Shared household expenses, split fairly by income",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			plog.Configure(plog.Config{Level: logLevel, Output: cmd.ErrOrStderr()})
			cmd.SetContext(plog.ContextWithRunID(cmd.Context(), runlog.NewRunID()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL and config")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(),
		newCategorizeCommand(),
		newOverrideCommand(),
		newBalanceCommand(),
		newSummaryCommand(),
		newLintCommand(),
	)

	return rootCmd
}
