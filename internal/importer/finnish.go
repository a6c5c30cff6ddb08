package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pennywise-app/pennywise/internal/model"
)

// FinnishCSVParser parses semicolon-separated bank exports from Finnish banks
// (Nordea, OP, S-Pankki): DD.MM.YYYY dates and comma decimals.
type FinnishCSVParser struct{}

// Format returns the parser name.
func (p *FinnishCSVParser) Format() string { return "fi" }

// Source returns the default source tag for parsed rows.
func (p *FinnishCSVParser) Source() model.Source { return model.SourceCSV }

// Parse reads a Finnish bank CSV and returns Transactions with signed amounts.
func (p *FinnishCSVParser) Parse(r io.Reader) ([]model.Transaction, error) {
	// Strip a UTF-8 BOM; UTF-16 exports are decoded when they carry one.
	br := transform.NewReader(r, unicode.BOMOverride(transform.Nop))

	cr := csv.NewReader(br)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bank CSV: %w", err)
	}

	return parseRecords(records)
}
