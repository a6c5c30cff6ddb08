package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/fixtures"
	"github.com/pennywise-app/pennywise/internal/issuetemplate"
)

func newLintCommand() *cobra.Command {
	lintCmd := &cobra.Command{
		Use:   "lint",
		Short: "Check example fixtures and issue templates",
	}
	lintCmd.AddCommand(newLintFixturesCommand(), newLintTemplateCommand())
	return lintCmd
}

func newLintFixturesCommand() *cobra.Command {
	var patterns []string
	var placeholder string

	cmd := &cobra.Command{
		Use:   "fixtures [directory]",
		Short: "Check example bank reports for encoding, macros, coverage and anonymization",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Join("data", "examples")
			if len(args) > 0 {
				dir = args[0]
			}

			l := fixtures.NewLinter()
			if len(patterns) > 0 {
				l.Patterns = patterns
			}
			l.PlaceholderAccount = placeholder

			findings, err := l.Lint(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range findings {
				fmt.Fprintln(out, f)
			}
			if fixtures.HasErrors(findings) {
				return fmt.Errorf("%s: fixture check failed", dir)
			}
			fmt.Fprintf(out, "%s: ok\n", dir)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&patterns, "pattern", nil, "glob patterns relative to the directory (default **/*.csv, **/*.xlsx, **/*.xlsm, **/*.xls)")
	cmd.Flags().StringVar(&placeholder, "placeholder", "FI00", "account-number prefix used by anonymized data")
	return cmd
}

func newLintTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template <file>...",
		Short: "Check issue templates for front matter and required sections",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				problems, err := issuetemplate.LintReader(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				if len(problems) == 0 {
					fmt.Fprintf(out, "%s: ok\n", path)
					continue
				}
				failed++
				for _, p := range problems {
					fmt.Fprintf(out, "%s: %s\n", path, p)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d templates failed", failed, len(args))
			}
			return nil
		},
	}
}
