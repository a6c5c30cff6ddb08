package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/categorize"
	"github.com/pennywise-app/pennywise/internal/importer"
	plog "github.com/pennywise-app/pennywise/internal/log"
)

func newImportCommand() *cobra.Command {
	var owner string
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import bank reports into the ledger",
		Long: `Import bank reports (Finnish CSV or XLSX) into the monthly ledger.

With no files, every supported report in import/ is imported and then moved
to import/processed/. Expenses are categorized with the workspace's keyword
mappings; rows already in the ledger are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			if !ws.cfg.Household.Known(owner) {
				return fmt.Errorf("unknown owner %q: must be %s or %s",
					owner, ws.cfg.Household.PartnerA.Name, ws.cfg.Household.PartnerB.Name)
			}
			return runImport(cmd, ws, owner, args)
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "partner whose statement this is (required)")
	_ = cmd.MarkFlagRequired("owner")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")

	return cmd
}

func runImport(cmd *cobra.Command, ws *workspace, owner string, files []string) error {
	scanned := len(files) == 0
	if scanned {
		infos, err := importer.Scan(ws.registry, ws.root)
		if err != nil {
			return err
		}
		for _, fi := range infos {
			files = append(files, fi.Path)
		}
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No bank reports in import/")
			return nil
		}
	}

	out := cmd.OutOrStdout()
	imported, totalAdded, importErr := importFiles(ws, out, owner, files, scanned)
	if imported == 0 {
		return importErr
	}

	// Files before a failing one are already in the ledger; commit and log them.
	hash, err := ws.finish(cmd.Context(), fmt.Sprintf("import: %d transactions for %s", totalAdded, owner))
	if err != nil {
		return errors.Join(importErr, err)
	}
	if hash != "" {
		fmt.Fprintf(out, "Committed %s\n", hash)
	}
	return importErr
}

// importFiles imports files in order and stops at the first failure. It returns
// how many files were fully imported and how many transactions they added.
func importFiles(ws *workspace, out io.Writer, owner string, files []string, scanned bool) (int, int, error) {
	imported, totalAdded := 0, 0
	for _, path := range files {
		rep, err := importer.ImportFile(ws.registry, path, "")
		if err != nil {
			return imported, totalAdded, err
		}

		txns := categorize.CategorizeAll(rep.Expenses, ws.mappings, owner)
		res, err := ws.ledger.Append(txns)
		if err != nil {
			return imported, totalAdded, fmt.Errorf("appending %s: %w", filepath.Base(path), err)
		}
		totalAdded += len(res.Added)

		rel := ws.relPath(path)
		l := ws.log.With().Str(plog.FieldPath, rel).Str(plog.FieldOwner, owner).Logger()
		l.Info().
			Int("income", len(rep.Income)).
			Int("expenses", len(rep.Expenses)).
			Int("zero", rep.Zero).
			Int("added", len(res.Added)).
			Int("skipped", res.Skipped).
			Msg("bank report imported")

		fmt.Fprintf(out, "%s: %d income (€%s), %d expenses (€%s); %d added, %d already in ledger\n",
			filepath.Base(path),
			len(rep.Income), importer.Total(rep.Income).StringFixed(2),
			len(rep.Expenses), importer.Total(rep.Expenses).StringFixed(2),
			len(res.Added), res.Skipped)

		ws.rec.Record("import", fmt.Sprintf("owner=%s added=%d skipped=%d", owner, len(res.Added), res.Skipped), rel)
		imported++

		if scanned {
			if err := importer.MarkProcessed(ws.root, filepath.Base(path)); err != nil {
				return imported, totalAdded, err
			}
		}
	}
	return imported, totalAdded, nil
}
