package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/model"
)

// Header is the CSV header for ledger month files and CSV exports.
const Header = "id,posting_date,payment_date,owner,amount,category,auto_categorized,transaction_type,payer,recipient_name,recipient_account,recipient_bic,reference_number,message,archive_id,source"

const (
	numFields    = 16
	dateFormat   = "2006-01-02"
	colID        = 0
	colPosting   = 1
	colPayment   = 2
	colOwner     = 3
	colAmount    = 4
	colCategory  = 5
	colAuto      = 6
	colType      = 7
	colPayer     = 8
	colRecipient = 9
	colAccount   = 10
	colBIC       = 11
	colReference = 12
	colMessage   = 13
	colArchiveID = 14
	colSource    = 15
)

// ReadTransactions reads all rows from a ledger CSV reader.
func ReadTransactions(r io.Reader) ([]model.CategorizedTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.CategorizedTransaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes txns to w, header first.
func WriteTransactions(w io.Writer, txns []model.CategorizedTransaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a transaction to a CSV row.
func MarshalTransaction(t model.CategorizedTransaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colPosting] = t.PostingDate.Format(dateFormat)
	if !t.PaymentDate.IsZero() {
		row[colPayment] = t.PaymentDate.Format(dateFormat)
	}
	row[colOwner] = t.Owner
	row[colAmount] = t.Amount.StringFixed(2)
	row[colCategory] = t.Category
	row[colAuto] = strconv.FormatBool(t.AutoCategorized)
	row[colType] = t.Type
	row[colPayer] = t.Payer
	row[colRecipient] = t.RecipientName
	row[colAccount] = t.RecipientAccount
	row[colBIC] = t.RecipientBIC
	row[colReference] = t.ReferenceNumber
	row[colMessage] = t.Message
	row[colArchiveID] = t.ArchiveID
	row[colSource] = string(t.Source)
	return row
}

// UnmarshalTransaction converts a CSV row to a transaction.
func UnmarshalTransaction(record []string) (model.CategorizedTransaction, error) {
	if len(record) != numFields {
		return model.CategorizedTransaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	posting, err := time.Parse(dateFormat, record[colPosting])
	if err != nil {
		return model.CategorizedTransaction{}, fmt.Errorf("parsing posting_date %q: %w", record[colPosting], err)
	}

	var payment time.Time
	if record[colPayment] != "" {
		payment, err = time.Parse(dateFormat, record[colPayment])
		if err != nil {
			return model.CategorizedTransaction{}, fmt.Errorf("parsing payment_date %q: %w", record[colPayment], err)
		}
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.CategorizedTransaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	auto, err := strconv.ParseBool(record[colAuto])
	if err != nil {
		return model.CategorizedTransaction{}, fmt.Errorf("parsing auto_categorized %q: %w", record[colAuto], err)
	}

	return model.CategorizedTransaction{
		Transaction: model.Transaction{
			PostingDate:      posting,
			PaymentDate:      payment,
			Amount:           amount,
			Type:             record[colType],
			Payer:            record[colPayer],
			RecipientName:    record[colRecipient],
			RecipientAccount: record[colAccount],
			RecipientBIC:     record[colBIC],
			ReferenceNumber:  record[colReference],
			Message:          record[colMessage],
			ArchiveID:        record[colArchiveID],
			Source:           model.Source(record[colSource]),
		},
		ID:              record[colID],
		Owner:           record[colOwner],
		Category:        record[colCategory],
		AutoCategorized: auto,
	}, nil
}
