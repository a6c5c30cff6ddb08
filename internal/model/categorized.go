package model

import "strings"

// Uncategorized is the category assigned when no keyword matches.
const Uncategorized = "uncategorized"

// CategorizedTransaction is an expense (or income) row with a category attached.
// Amount is always stored as a positive magnitude.
type CategorizedTransaction struct {
	Transaction
	ID              string // "YYYY-MM-NNN"
	Owner           string // partner who paid
	Category        string
	AutoCategorized bool
}

// Month returns the ledger partition of the transaction, e.g. "2024-03".
func (c CategorizedTransaction) Month() string {
	return c.PostingDate.Format("2006-01")
}

// DedupKey identifies the same bank row across repeated imports.
func (c CategorizedTransaction) DedupKey() string {
	if c.ArchiveID != "" {
		return c.Owner + "|" + c.ArchiveID
	}
	return strings.Join([]string{
		c.Owner,
		c.PostingDate.Format("2006-01-02"),
		c.Amount.StringFixed(2),
		c.Description(),
	}, "|")
}
