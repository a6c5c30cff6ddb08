package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOverrideCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "override <transaction-id> <category>",
		Short: "Set a ledger transaction's category by hand",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}

			txnID, category := args[0], args[1]
			if !ws.mappings.Has(category) {
				ws.log.Warn().Str("category", category).Msg("category is not in the mapping file")
			}

			updated, err := ws.ledger.SetCategory(txnID, category)
			if err != nil {
				return err
			}

			ws.rec.Record("override", fmt.Sprintf("%s set to %s", txnID, category), "")
			hash, err := ws.finish(cmd.Context(), fmt.Sprintf("override: %s as %s", txnID, category))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (€%s): %s\n", txnID, updated.Description(), updated.Amount.StringFixed(2), updated.Category)
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Committed %s\n", hash)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	return cmd
}
