package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/categorize"
	"github.com/pennywise-app/pennywise/internal/config"
	"github.com/pennywise-app/pennywise/internal/importer"
	plog "github.com/pennywise-app/pennywise/internal/log"
	"github.com/pennywise-app/pennywise/internal/model"
)

func newCategorizeCommand() *cobra.Command {
	var format, outPath, mappingsPath, owner, repoDir string

	cmd := &cobra.Command{
		Use:   "categorize <file>",
		Short: "Categorize the expenses of a bank report and export them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			mappings := categorize.DefaultMappings()
			switch {
			case mappingsPath != "":
				if mappings, err = categorize.LoadMappings(mappingsPath); err != nil {
					return err
				}
			case ws != nil:
				mappings = ws.mappings
			}
			if format == "" {
				format = categorize.FormatCSV
				if ws != nil && ws.cfg.Export.Format != "" {
					format = ws.cfg.Export.Format
				}
			}

			rep, err := importer.ImportFile(importer.DefaultRegistry(), args[0], "")
			if err != nil {
				return err
			}
			txns := categorize.CategorizeAll(rep.Expenses, mappings, owner)

			if outPath == "" {
				data, err := categorize.Encode(txns, format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if ws != nil {
				outPath = config.Resolve(ws.root, outPath)
			}
			if err := categorize.Save(outPath, txns, format); err != nil {
				return err
			}
			printTotals(cmd, txns)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d categorized expenses to %s\n", len(txns), outPath)

			logger := plog.FromContext(cmd.Context())
			logger.Info().Str(plog.FieldPath, outPath).Str(plog.FieldFormat, format).Int(plog.FieldCount, len(txns)).Msg("categorized export written")

			if ws == nil {
				return nil
			}
			ws.rec.Record("export", fmt.Sprintf("%d expenses as %s", len(txns), format), ws.relPath(outPath))
			_, err = ws.finish(cmd.Context(), fmt.Sprintf("categorize: export %s", ws.relPath(outPath)))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: csv or json (default from config, else csv)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&mappingsPath, "mappings", "", "category mapping file (.yaml, .json or .csv)")
	cmd.Flags().StringVar(&owner, "owner", "", "owner recorded on each transaction")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory (optional)")

	return cmd
}

func printTotals(cmd *cobra.Command, txns []model.CategorizedTransaction) {
	totals := categorize.Totals(txns)
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintf(out, "  %-15s €%s\n", name, totals[name].StringFixed(2))
	}
}
