package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/balance"
	"github.com/pennywise-app/pennywise/internal/config"
	"github.com/pennywise-app/pennywise/internal/ledger"
	plog "github.com/pennywise-app/pennywise/internal/log"
)

func newBalanceCommand() *cobra.Command {
	var month, repoDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show who owes whom for a month",
		Long: `Split shared expenses in proportion to the partners' incomes.

Without --month, each partner's configured statement is imported and every
expense is treated as shared. With --month YYYY-MM the ledger month is used.
When no statements are configured the latest ledger month is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}

			h := ws.cfg.Household
			a := partner(ws.root, h.PartnerA)
			b := partner(ws.root, h.PartnerB)

			if month == "" && (a.Statement == "" || b.Statement == "") {
				if month, err = latestMonth(ws.ledger, a, b); err != nil {
					return err
				}
			}

			var sheet balance.Sheet
			if month != "" {
				year, m, err := ledger.ParseMonth(month)
				if err != nil {
					return err
				}
				txns, err := ws.ledger.ReadMonth(year, m)
				if err != nil {
					return err
				}
				if sheet, err = balance.FromTransactions(a, b, txns); err != nil {
					return err
				}
			} else {
				sheet, err = balance.ProcessMonth(cmd.Context(), balance.Household{
					A:        a,
					B:        b,
					Mappings: ws.mappings,
					Registry: ws.registry,
				})
				if err != nil {
					return err
				}
			}

			ws.log.Info().Str(plog.FieldMonth, month).Str("summary", sheet.Summary).Msg("balance computed")
			ws.rec.Record("balance", sheet.Summary, month)
			if _, err := ws.finish(cmd.Context(), "balance: "+sheet.Summary); err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(sheet)
			}
			printSheet(cmd.OutOrStdout(), sheet)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "ledger month (YYYY-MM) instead of the configured statements")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the balance sheet as JSON")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	return cmd
}

// latestMonth picks the newest ledger month for a balance run that has no
// statements to import.
func latestMonth(l *ledger.Service, a, b balance.Partner) (string, error) {
	months, err := l.Months()
	if err != nil {
		return "", err
	}
	if len(months) == 0 {
		missing := a.Name
		if a.Statement != "" {
			missing = b.Name
		}
		return "", fmt.Errorf("no statement configured for %s in %s and the ledger is empty; set household.*.statement or use --month", missing, config.FileName)
	}
	return months[len(months)-1], nil
}

func partner(root string, p config.Partner) balance.Partner {
	return balance.Partner{
		Name:      p.Name,
		Income:    p.Income,
		Statement: config.Resolve(root, p.Statement),
	}
}

func printSheet(w io.Writer, s balance.Sheet) {
	fmt.Fprintln(w, "=== Monthly Balance Sheet ===")
	fmt.Fprintf(w, "Total Shared Expenses: €%s\n", s.TotalShared.StringFixed(2))

	if len(s.ByCategory) > 0 {
		names := make([]string, 0, len(s.ByCategory))
		for name := range s.ByCategory {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-15s €%s\n", name, s.ByCategory[name].StringFixed(2))
		}
	}

	for _, p := range []balance.PersonBalance{s.A, s.B} {
		fmt.Fprintf(w, "\n%s:\n", p.Name)
		fmt.Fprintf(w, "  Fair Share:    €%s\n", p.FairShare.StringFixed(2))
		fmt.Fprintf(w, "  Actually Paid: €%s\n", p.ActualPaid.StringFixed(2))
		fmt.Fprintf(w, "  Balance:       €%s\n", p.Balance.StringFixed(2))
	}
	fmt.Fprintf(w, "\nSummary: %s\n", s.Summary)
}
