package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/model"
)

// ErrMissingColumn is returned when a report lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Canonical column names.
const (
	ColPostingDate      = "posting_date"
	ColPaymentDate      = "payment_date"
	ColAmount           = "amount"
	ColTransactionType  = "transaction_type"
	ColPayer            = "payer"
	ColRecipientName    = "recipient_name"
	ColRecipientAccount = "recipient_account"
	ColRecipientBIC     = "recipient_bic"
	ColReferenceNumber  = "reference_number"
	ColMessage          = "message"
	ColArchiveID        = "archive_id"
)

// finnishColumns maps Finnish bank export headers to canonical names.
var finnishColumns = map[string]string{
	"kirjauspäivä":      ColPostingDate,
	"maksupäivä":        ColPaymentDate,
	"summa":             ColAmount,
	"tapahtumalaji":     ColTransactionType,
	"maksaja":           ColPayer,
	"saajan nimi":       ColRecipientName,
	"saajan tilinumero": ColRecipientAccount,
	"saajan bic-tunnus": ColRecipientBIC,
	"viitenumero":       ColReferenceNumber,
	"viesti":            ColMessage,
	"arkistointitunnus": ColArchiveID,
}

var canonicalColumns = []string{
	ColPostingDate, ColPaymentDate, ColAmount, ColTransactionType, ColPayer,
	ColRecipientName, ColRecipientAccount, ColRecipientBIC, ColReferenceNumber,
	ColMessage, ColArchiveID,
}

// CanonicalColumn returns the canonical name for a report header, or "" if
// the header is not recognized. Both Finnish and canonical English headers match.
func CanonicalColumn(header string) string {
	h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	if c, ok := finnishColumns[h]; ok {
		return c
	}
	for _, c := range canonicalColumns {
		if h == c {
			return c
		}
	}
	return ""
}

// columnIndex maps canonical column names to positions in a row.
type columnIndex map[string]int

func newColumnIndex(header []string) (columnIndex, error) {
	idx := make(columnIndex)
	for i, h := range header {
		c := CanonicalColumn(h)
		if c == "" {
			continue
		}
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		idx[c] = i
	}
	for _, req := range []string{ColPostingDate, ColAmount} {
		if _, ok := idx[req]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, req)
		}
	}
	return idx, nil
}

func (ci columnIndex) get(rec []string, col string) string {
	i, ok := ci[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// transaction converts one data row. A missing payment date falls back to the posting date.
func (ci columnIndex) transaction(rec []string) (model.Transaction, error) {
	posting, err := ParseDate(ci.get(rec, ColPostingDate))
	if err != nil {
		return model.Transaction{}, err
	}

	payment := posting
	if raw := ci.get(rec, ColPaymentDate); raw != "" {
		payment, err = ParseDate(raw)
		if err != nil {
			return model.Transaction{}, err
		}
	}

	amount, err := ParseAmount(ci.get(rec, ColAmount))
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		PostingDate:      posting,
		PaymentDate:      payment,
		Amount:           amount,
		Type:             ci.get(rec, ColTransactionType),
		Payer:            ci.get(rec, ColPayer),
		RecipientName:    ci.get(rec, ColRecipientName),
		RecipientAccount: ci.get(rec, ColRecipientAccount),
		RecipientBIC:     ci.get(rec, ColRecipientBIC),
		ReferenceNumber:  ci.get(rec, ColReferenceNumber),
		Message:          ci.get(rec, ColMessage),
		ArchiveID:        ci.get(rec, ColArchiveID),
	}, nil
}

// parseRecords turns a header row plus data rows into transactions.
// Blank rows are skipped; row numbers in errors are 1-based with the header as row 1.
func parseRecords(records [][]string) ([]model.Transaction, error) {
	if len(records) == 0 {
		return nil, nil
	}

	ci, err := newColumnIndex(records[0])
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		txn, err := ci.transaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txn.Row = i + 2
		txns = append(txns, txn)
	}
	return txns, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// dateLayouts are tried in order. "2.1.2006" also accepts zero-padded days and months.
var dateLayouts = []string{"2.1.2006", "2006-01-02"}

// ParseDate parses a Finnish-format date (DD.MM.YYYY). ISO dates are accepted as well.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q: expected DD.MM.YYYY", s)
}

var amountCleaner = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "'", "")

// ParseAmount parses a Finnish-format amount like "-1 234,56" or "+45,00".
// Plain decimals ("-1234.56") are accepted; "1,234.56" is rejected because the
// comma would be misread as the decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(s))
	comma := strings.LastIndex(cleaned, ",")
	if comma >= 0 && strings.LastIndex(cleaned, ".") > comma {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: comma before decimal point", s)
	}
	if comma >= 0 {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	cleaned = strings.TrimPrefix(cleaned, "+")
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: empty", s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}
