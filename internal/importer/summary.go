package importer

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/model"
)

// TypeSummary aggregates transactions sharing a bank transaction type.
type TypeSummary struct {
	Type  string
	Count int
	Sum   decimal.Decimal
	First time.Time // earliest posting date
	Last  time.Time // latest posting date
}

// Summarize groups transactions by type, sorted by type name.
func Summarize(txns []model.Transaction) []TypeSummary {
	byType := make(map[string]*TypeSummary)
	for _, t := range txns {
		s, ok := byType[t.Type]
		if !ok {
			s = &TypeSummary{Type: t.Type, Sum: decimal.Zero, First: t.PostingDate, Last: t.PostingDate}
			byType[t.Type] = s
		}
		s.Count++
		s.Sum = s.Sum.Add(t.Amount)
		if t.PostingDate.Before(s.First) {
			s.First = t.PostingDate
		}
		if t.PostingDate.After(s.Last) {
			s.Last = t.PostingDate
		}
	}

	out := make([]TypeSummary, 0, len(byType))
	for _, s := range byType {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Total sums the amounts of txns.
func Total(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return total
}
