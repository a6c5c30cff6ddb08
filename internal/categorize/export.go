package categorize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/model"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// record is the JSON export shape of a categorized transaction.
type record struct {
	ID               string `json:"id"`
	PostingDate      string `json:"posting_date"`
	PaymentDate      string `json:"payment_date,omitempty"`
	Owner            string `json:"owner,omitempty"`
	Amount           string `json:"amount"`
	Category         string `json:"category"`
	AutoCategorized  bool   `json:"auto_categorized"`
	TransactionType  string `json:"transaction_type,omitempty"`
	Payer            string `json:"payer,omitempty"`
	RecipientName    string `json:"recipient_name,omitempty"`
	RecipientAccount string `json:"recipient_account,omitempty"`
	RecipientBIC     string `json:"recipient_bic,omitempty"`
	ReferenceNumber  string `json:"reference_number,omitempty"`
	Message          string `json:"message,omitempty"`
	ArchiveID        string `json:"archive_id,omitempty"`
	Source           string `json:"source,omitempty"`
}

func toRecord(t model.CategorizedTransaction) record {
	r := record{
		ID:               t.ID,
		PostingDate:      t.PostingDate.Format("2006-01-02"),
		Owner:            t.Owner,
		Amount:           t.Amount.StringFixed(2),
		Category:         t.Category,
		AutoCategorized:  t.AutoCategorized,
		TransactionType:  t.Type,
		Payer:            t.Payer,
		RecipientName:    t.RecipientName,
		RecipientAccount: t.RecipientAccount,
		RecipientBIC:     t.RecipientBIC,
		ReferenceNumber:  t.ReferenceNumber,
		Message:          t.Message,
		ArchiveID:        t.ArchiveID,
		Source:           string(t.Source),
	}
	if !t.PaymentDate.IsZero() {
		r.PaymentDate = t.PaymentDate.Format("2006-01-02")
	}
	return r
}

// Encode renders txns in the given format ("csv" or "json").
func Encode(txns []model.CategorizedTransaction, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case FormatCSV:
		if err := ledger.WriteTransactions(&buf, txns); err != nil {
			return nil, err
		}
	case FormatJSON:
		records := make([]record, len(txns))
		for i, t := range txns {
			records[i] = toRecord(t)
		}
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return buf.Bytes(), nil
}

// Save writes categorized transactions to path atomically.
func Save(path string, txns []model.CategorizedTransaction, format string) error {
	data, err := Encode(txns, format)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
