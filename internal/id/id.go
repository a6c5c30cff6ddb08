// Package id formats and parses ledger transaction IDs ("2024-03-007").
package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTxnID returns a transaction ID like "2024-03-007".
func FormatTxnID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ForDate returns the ID of sequence seq in the month containing d.
func ForDate(d time.Time, seq int) string {
	return FormatTxnID(d.Year(), int(d.Month()), seq)
}

// ParseTxnID parses "2024-03-007" into year, month, seq.
func ParseTxnID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid transaction ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in transaction ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in transaction ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month %d out of range in transaction ID %q", month, id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in transaction ID %q: %w", id, err)
	}
	if seq < 1 {
		return 0, 0, 0, fmt.Errorf("sequence must be positive in transaction ID %q", id)
	}

	return year, month, seq, nil
}

// MaxSeq returns the highest sequence number among ids. Unparseable IDs are ignored.
func MaxSeq(ids []string) int {
	maxSeq := 0
	for _, s := range ids {
		_, _, seq, err := ParseTxnID(s)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq
}
