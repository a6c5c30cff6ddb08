package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// household implements OwnerChecker for testing.
type household map[string]bool

func (h household) Known(name string) bool { return h[name] }

var alicebob = household{"Alice": true, "Bob": true}

func txn(txnID, owner string, d time.Time, amount, category, recipient, archiveID string) model.CategorizedTransaction {
	return model.CategorizedTransaction{
		Transaction: model.Transaction{
			PostingDate:   d,
			PaymentDate:   d,
			Amount:        dec(amount),
			Type:          "KORTTIOSTO",
			RecipientName: recipient,
			ArchiveID:     archiveID,
			Source:        model.SourceCSV,
		},
		ID:              txnID,
		Owner:           owner,
		Category:        category,
		AutoCategorized: true,
	}
}
