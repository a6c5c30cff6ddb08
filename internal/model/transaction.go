package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source records where a transaction came from.
type Source string

const (
	SourceCSV    Source = "CSV"
	SourceXLSX   Source = "XLSX"
	SourceManual Source = "Manual"
)

// Transaction represents a parsed bank report row.
type Transaction struct {
	PostingDate      time.Time
	PaymentDate      time.Time
	Amount           decimal.Decimal // negative = expense, positive = income
	Type             string          // bank transaction type (KORTTIOSTO, PALKKA, ...)
	Payer            string
	RecipientName    string
	RecipientAccount string
	RecipientBIC     string
	ReferenceNumber  string
	Message          string
	ArchiveID        string
	Source           Source
	Row              int // 1-based row in the source file, header is row 1; 0 when unknown
}

// Description returns the text used to categorize the transaction: the
// recipient name, or the payer, or the message when both are empty.
func (t Transaction) Description() string {
	switch {
	case t.RecipientName != "":
		return t.RecipientName
	case t.Payer != "":
		return t.Payer
	default:
		return t.Message
	}
}

// IsIncome reports whether money came in. Zero amounts are neither income nor expense.
func (t Transaction) IsIncome() bool { return t.Amount.IsPositive() }

// IsExpense reports whether money went out.
func (t Transaction) IsExpense() bool { return t.Amount.IsNegative() }
