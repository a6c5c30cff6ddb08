package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/categorize"
	"github.com/pennywise-app/pennywise/internal/config"
	"github.com/pennywise-app/pennywise/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var partnerA, partnerB string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new PennyWise workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(cmd.Context(), absDir, partnerA, partnerB, useGit)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized PennyWise workspace at %s (%s)\n", absDir, hash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized PennyWise workspace at %s\n", absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&partnerA, "partner-a", "", "first partner's name (required)")
	cmd.Flags().StringVar(&partnerB, "partner-b", "", "second partner's name (required)")
	_ = cmd.MarkFlagRequired("partner-a")
	_ = cmd.MarkFlagRequired("partner-b")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit the workspace")

	return cmd
}

// workspaceDirs are created by init.
var workspaceDirs = []string{
	"import",
	filepath.Join("import", "processed"),
	"ledger",
	"exports",
	"logs",
	filepath.Join("data", "examples"),
}

func runInit(ctx context.Context, dir, partnerA, partnerB string, useGit bool) (string, error) {
	cfg := config.Default(partnerA, partnerB)
	cfg.Git.AutoCommit = useGit
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return "", fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	for _, d := range workspaceDirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return "", err
	}

	if err := categorize.SaveMappings(filepath.Join(dir, cfg.Categories.File), categorize.DefaultMappings()); err != nil {
		return "", fmt.Errorf("writing category mappings: %w", err)
	}

	gitignore := "exports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	for _, keep := range []string{"import", filepath.Join("data", "examples")} {
		if err := os.WriteFile(filepath.Join(dir, keep, ".gitkeep"), []byte{}, 0o644); err != nil {
			return "", fmt.Errorf("writing .gitkeep: %w", err)
		}
	}

	if !useGit {
		return "", nil
	}

	if err := gitops.Init(ctx, dir); err != nil {
		return "", err
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(ctx, dir, fmt.Sprintf("init: %s and %s household", partnerA, partnerB), author)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
