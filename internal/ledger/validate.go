package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/id"
	"github.com/pennywise-app/pennywise/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	TxnID       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.TxnID, e.Description)
}

// OwnerChecker tests whether a name belongs to the household.
type OwnerChecker interface {
	Known(name string) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateMonth enforces the ledger invariants on one month's transactions.
func ValidateMonth(txns []model.CategorizedTransaction, owners OwnerChecker, year, month int) []ValidationError {
	var errs []ValidationError
	add := func(inv int, txnID, format string, args ...any) {
		errs = append(errs, ValidationError{Invariant: inv, TxnID: txnID, Description: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool)
	seqs := make(map[int]bool)
	for _, t := range txns {
		// Invariant 1: Posting date within month.
		if t.PostingDate.Year() != year || int(t.PostingDate.Month()) != month {
			add(1, t.ID, "date %s not in %04d-%02d", t.PostingDate.Format(dateFormat), year, month)
		}

		// Invariant 2: Amounts are positive magnitudes.
		if !t.Amount.IsPositive() {
			add(2, t.ID, "amount %s must be positive", t.Amount.String())
		}

		// Invariant 3: Exact decimals, no more than 2 places.
		if !t.Amount.Mul(hundred).Equal(t.Amount.Mul(hundred).Floor()) {
			add(3, t.ID, "amount %s has more than 2 decimal places", t.Amount.String())
		}

		// Invariant 4: Category set.
		if t.Category == "" {
			add(4, t.ID, "category is empty")
		}

		// Invariant 5: Owner belongs to the household.
		if owners != nil && !owners.Known(t.Owner) {
			add(5, t.ID, "unknown owner %q", t.Owner)
		}

		// Invariant 6: IDs are unique and belong to this month.
		y, m, seq, err := id.ParseTxnID(t.ID)
		if err != nil {
			add(6, t.ID, "invalid transaction ID: %v", err)
			continue
		}
		if y != year || m != month {
			add(6, t.ID, "ID not in %04d-%02d", year, month)
		}
		if seen[t.ID] {
			add(6, t.ID, "duplicate transaction ID")
		}
		seen[t.ID] = true
		seqs[seq] = true
	}

	// Invariant 7: Sequences contiguous 1..N.
	for i := 1; i <= len(seqs); i++ {
		if !seqs[i] {
			add(7, fmt.Sprintf("seq %d", i), "missing sequence %d in 1..%d", i, len(seqs))
		}
	}

	return errs
}
