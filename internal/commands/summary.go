package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/importer"
	"github.com/pennywise-app/pennywise/internal/model"
)

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file>",
		Short: "Summarize a bank report by transaction type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := importer.ImportFile(importer.DefaultRegistry(), args[0], "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTypeSummary(out, "Income", rep.Income)
			fmt.Fprintln(out)
			printTypeSummary(out, "Expenses", rep.Expenses)
			if rep.Zero > 0 {
				fmt.Fprintf(out, "\n%d zero-amount rows skipped\n", rep.Zero)
			}
			return nil
		},
	}
}

func printTypeSummary(w io.Writer, title string, txns []model.Transaction) {
	fmt.Fprintf(w, "%s: %d transactions, €%s\n", title, len(txns), importer.Total(txns).StringFixed(2))
	if len(txns) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  TYPE\tCOUNT\tSUM\tFIRST\tLAST")
	for _, s := range importer.Summarize(txns) {
		fmt.Fprintf(tw, "  %s\t%d\t€%s\t%s\t%s\n",
			s.Type, s.Count, s.Sum.StringFixed(2),
			s.First.Format("2006-01-02"), s.Last.Format("2006-01-02"))
	}
	tw.Flush()
}
