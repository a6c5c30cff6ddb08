// Package ledger stores categorized transactions in per-month CSV files.
package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/pennywise-app/pennywise/internal/id"
	"github.com/pennywise-app/pennywise/internal/model"
)

// ErrNotFound is returned when a transaction ID is not in the ledger.
var ErrNotFound = errors.New("transaction not found")

const (
	ledgerDir = "ledger"
	monthFile = "transactions.csv"
)

// Service reads and writes the ledger under a workspace root.
type Service struct {
	repoRoot string
	owners   OwnerChecker
}

// NewService creates a ledger Service. A nil owners checker accepts any owner.
func NewService(repoRoot string, owners OwnerChecker) *Service {
	return &Service{repoRoot: repoRoot, owners: owners}
}

// AppendResult reports what Append did.
type AppendResult struct {
	Added   []string // IDs assigned to new transactions
	Skipped int      // duplicates already in the ledger
}

// Append adds txns to their month files. Incoming IDs are replaced with the
// next free sequence numbers; rows already present (same DedupKey) are skipped, counted per occurrence.
// Each month is validated in full before it is written, and nothing is written
// if any month fails validation.
func (s *Service) Append(txns []model.CategorizedTransaction) (AppendResult, error) {
	var res AppendResult

	byMonth := make(map[string][]model.CategorizedTransaction)
	var months []string
	for _, t := range txns {
		m := t.Month()
		if _, ok := byMonth[m]; !ok {
			months = append(months, m)
		}
		byMonth[m] = append(byMonth[m], t)
	}
	sort.Strings(months)

	pending := make(map[string][]model.CategorizedTransaction, len(months))
	for _, m := range months {
		year, month := splitMonth(m)

		existing, err := s.ReadMonth(year, month)
		if err != nil {
			return AppendResult{}, err
		}

		// Each stored row absorbs one incoming row with the same key.
		stored := make(map[string]int, len(existing))
		ids := make([]string, len(existing))
		for i, t := range existing {
			stored[t.DedupKey()]++
			ids[i] = t.ID
		}
		next := id.MaxSeq(ids) + 1

		all := existing
		var added []string
		for _, t := range byMonth[m] {
			if key := t.DedupKey(); stored[key] > 0 {
				stored[key]--
				res.Skipped++
				continue
			}
			t.ID = id.FormatTxnID(year, month, next)
			next++
			all = append(all, t)
			added = append(added, t.ID)
		}
		if len(added) == 0 {
			continue
		}

		if verrs := ValidateMonth(all, s.owners, year, month); len(verrs) > 0 {
			return AppendResult{}, validationFailed(verrs)
		}
		pending[m] = all
		res.Added = append(res.Added, added...)
	}

	for _, m := range months {
		all, ok := pending[m]
		if !ok {
			continue
		}
		year, month := splitMonth(m)
		if err := s.writeMonth(year, month, all); err != nil {
			return AppendResult{}, err
		}
	}
	return res, nil
}

// ReadMonth reads all transactions for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.CategorizedTransaction, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// SetCategory overrides the category of a stored transaction and marks it as
// manually categorized. Returns the updated transaction.
func (s *Service) SetCategory(txnID, category string) (model.CategorizedTransaction, error) {
	year, month, _, err := id.ParseTxnID(txnID)
	if err != nil {
		return model.CategorizedTransaction{}, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return model.CategorizedTransaction{}, errors.New("category must not be empty")
	}

	txns, err := s.ReadMonth(year, month)
	if err != nil {
		return model.CategorizedTransaction{}, err
	}

	for i := range txns {
		if txns[i].ID != txnID {
			continue
		}
		txns[i].Category = category
		txns[i].AutoCategorized = false
		if err := s.writeMonth(year, month, txns); err != nil {
			return model.CategorizedTransaction{}, err
		}
		return txns[i], nil
	}
	return model.CategorizedTransaction{}, fmt.Errorf("%w: %s", ErrNotFound, txnID)
}

// Months lists the months present in the ledger as "YYYY-MM", oldest first.
func (s *Service) Months() ([]string, error) {
	root := filepath.Join(s.repoRoot, ledgerDir)
	years, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger dir: %w", err)
	}

	var months []string
	for _, y := range years {
		if !y.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(root, y.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading ledger year %s: %w", y.Name(), err)
		}
		for _, m := range entries {
			if _, err := os.Stat(filepath.Join(root, y.Name(), m.Name(), monthFile)); err == nil {
				months = append(months, y.Name()+"-"+m.Name())
			}
		}
	}
	sort.Strings(months)
	return months, nil
}

func (s *Service) writeMonth(year, month int, txns []model.CategorizedTransaction) error {
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteTransactions(&buf, txns); err != nil {
		return fmt.Errorf("encoding ledger %04d-%02d: %w", year, month, err)
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing ledger %s: %w", path, err)
	}
	return nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, ledgerDir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), monthFile)
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (year, month int, err error) {
	y, m, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	year, err = strconv.Atoi(y)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	month, err = strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month in %q", s)
	}
	return year, month, nil
}

func splitMonth(m string) (int, int) {
	year, month, _ := ParseMonth(m)
	return year, month
}

func validationFailed(verrs []ValidationError) error {
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
