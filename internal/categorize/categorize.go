// Package categorize assigns spending categories to bank transactions by keyword.
package categorize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pennywise-app/pennywise/internal/id"
	"github.com/pennywise-app/pennywise/internal/model"
)

// ErrNotFound is returned when a transaction ID is not present.
var ErrNotFound = errors.New("transaction not found")

func upper(s string) string {
	return cases.Upper(language.Finnish).String(s)
}

// Categorize returns the first category whose keyword occurs in description,
// compared case-insensitively, or model.Uncategorized.
func Categorize(description string, m Mappings) string {
	desc := upper(description)
	for _, c := range m {
		for _, kw := range c.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(desc, upper(kw)) {
				return c.Name
			}
		}
	}
	return model.Uncategorized
}

// CategorizeAll categorizes txns for owner. IDs are assigned per posting
// month in input order, starting at 1.
func CategorizeAll(txns []model.Transaction, m Mappings, owner string) []model.CategorizedTransaction {
	out := make([]model.CategorizedTransaction, 0, len(txns))
	seq := make(map[string]int)
	for _, t := range txns {
		month := t.PostingDate.Format("2006-01")
		seq[month]++
		out = append(out, model.CategorizedTransaction{
			Transaction:     t,
			ID:              id.ForDate(t.PostingDate, seq[month]),
			Owner:           owner,
			Category:        Categorize(t.Description(), m),
			AutoCategorized: true,
		})
	}
	return out
}

// Override returns a copy of txns with the transaction identified by txnID
// moved to category and marked as manually categorized.
func Override(txns []model.CategorizedTransaction, txnID, category string) ([]model.CategorizedTransaction, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, errors.New("category must not be empty")
	}

	out := make([]model.CategorizedTransaction, len(txns))
	copy(out, txns)
	for i := range out {
		if out[i].ID == txnID {
			out[i].Category = category
			out[i].AutoCategorized = false
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, txnID)
}

// Totals sums amounts per category.
func Totals(txns []model.CategorizedTransaction) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}
	return sums
}
