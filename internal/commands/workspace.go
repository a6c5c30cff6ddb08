package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/categorize"
	"github.com/pennywise-app/pennywise/internal/config"
	"github.com/pennywise-app/pennywise/internal/gitops"
	"github.com/pennywise-app/pennywise/internal/importer"
	"github.com/pennywise-app/pennywise/internal/ledger"
	plog "github.com/pennywise-app/pennywise/internal/log"
	"github.com/pennywise-app/pennywise/internal/runlog"
)

// workspace is an initialized pennywise directory.
type workspace struct {
	root     string
	cfg      *config.Config
	ledger   *ledger.Service
	mappings categorize.Mappings
	registry *importer.Registry
	rec      *runlog.Recorder
	log      zerolog.Logger
}

func openWorkspace(cmd *cobra.Command, repoDir string) (*workspace, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadDir(root)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("log-level"); (f == nil || !f.Changed) && os.Getenv("LOG_LEVEL") == "" && cfg.Log.Level != "" {
		plog.Configure(plog.Config{Level: cfg.Log.Level, Output: cmd.ErrOrStderr()})
	}

	mappings, err := categorize.LoadMappings(config.Resolve(root, cfg.Categories.File))
	if err != nil {
		return nil, fmt.Errorf("loading category mappings: %w", err)
	}

	rec := runlog.NewRecorder(root, cmd.Name())
	if id := plog.RunIDFromContext(cmd.Context()); id != "" {
		rec.RunID = id
	}

	return &workspace{
		root:     root,
		cfg:      cfg,
		ledger:   ledger.NewService(root, cfg.Household),
		mappings: mappings,
		registry: importer.DefaultRegistry(),
		rec:      rec,
		log:      plog.WithComponent(cmd.Context(), cmd.Name()),
	}, nil
}

// finish commits the workspace when auto-commit is on and writes the run log.
func (w *workspace) finish(ctx context.Context, message string) (string, error) {
	var hash string
	if w.cfg.Git.AutoCommit && gitops.IsRepo(w.root) {
		author := gitops.Author{Name: w.cfg.Git.AuthorName, Email: w.cfg.Git.AuthorEmail}
		h, err := gitops.CommitAll(ctx, w.root, message, author)
		if err != nil {
			return "", fmt.Errorf("committing: %w", err)
		}
		hash = h
	}

	if err := w.rec.Flush(hash); err != nil {
		w.log.Warn().Err(err).Msg("failed to write run log")
	}
	return hash, nil
}

// relPath shortens p for log and run-log output.
func (w *workspace) relPath(p string) string {
	rel, err := filepath.Rel(w.root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return filepath.ToSlash(rel)
}
