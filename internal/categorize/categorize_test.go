package categorize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/importer"
	"github.com/pennywise-app/pennywise/internal/model"
)

const sampleReport = "../../testdata/sample_bank_report.csv"

func sampleExpenses(t *testing.T) []model.Transaction {
	t.Helper()
	rep, err := importer.ImportFile(importer.DefaultRegistry(), sampleReport, "")
	require.NoError(t, err)
	return rep.Expenses
}

func TestCategorize_Sample(t *testing.T) {
	categorized := CategorizeAll(sampleExpenses(t), DefaultMappings(), "Matti")

	want := map[string]string{
		"LIDL HELSINKI":    "food",
		"HSL":              "transport",
		"NETFLIX":          "entertainment",
		"MEHILÄINEN":       "health",
		"DNA OYJ":          "utilities",
		"VUOKRANANTAJA OY": "rent",
		"K-MARKET KAMPPI":  "food",
		"R-KIOSKI":         model.Uncategorized,
	}

	got := make(map[string]string)
	for _, c := range categorized {
		got[c.RecipientName] = c.Category
		assert.True(t, c.AutoCategorized)
		assert.Equal(t, "Matti", c.Owner)
	}
	for recipient, category := range want {
		assert.Equal(t, category, got[recipient], "recipient %s", recipient)
	}
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	m := DefaultMappings()
	assert.Equal(t, "food", Categorize("Lidl Kamppi", m))
	assert.Equal(t, "health", Categorize("mehiläinen oy", m))
	assert.Equal(t, "transport", Categorize("lähitaksi", m))
	assert.Equal(t, model.Uncategorized, Categorize("", m))
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	m := Mappings{
		{Name: "first", Keywords: []string{"SHOP"}},
		{Name: "second", Keywords: []string{"SHOP"}},
	}
	assert.Equal(t, "first", Categorize("THE SHOP", m))
}

func TestCategorize_IgnoresEmptyKeywords(t *testing.T) {
	m := Mappings{{Name: "everything", Keywords: []string{""}}}
	assert.Equal(t, model.Uncategorized, Categorize("ANY", m))
}

func TestCategorizeAll_IDsPerMonth(t *testing.T) {
	d := func(m, day int) time.Time { return time.Date(2024, time.Month(m), day, 0, 0, 0, 0, time.UTC) }
	txns := []model.Transaction{
		{PostingDate: d(3, 1), RecipientName: "LIDL", Amount: decimal.NewFromInt(1)},
		{PostingDate: d(4, 1), RecipientName: "HSL", Amount: decimal.NewFromInt(1)},
		{PostingDate: d(3, 2), RecipientName: "SATO", Amount: decimal.NewFromInt(1)},
	}
	got := CategorizeAll(txns, DefaultMappings(), "Alice")
	require.Len(t, got, 3)
	assert.Equal(t, "2024-03-001", got[0].ID)
	assert.Equal(t, "2024-04-001", got[1].ID)
	assert.Equal(t, "2024-03-002", got[2].ID)
}

func TestOverride(t *testing.T) {
	categorized := CategorizeAll(sampleExpenses(t), DefaultMappings(), "Matti")

	var netflixID string
	for _, c := range categorized {
		if c.RecipientName == "NETFLIX" {
			netflixID = c.ID
		}
	}
	require.NotEmpty(t, netflixID)

	updated, err := Override(categorized, netflixID, "streaming")
	require.NoError(t, err)

	for i, c := range updated {
		if c.ID == netflixID {
			assert.Equal(t, "streaming", c.Category)
			assert.False(t, c.AutoCategorized)
			// Original slice untouched.
			assert.Equal(t, "entertainment", categorized[i].Category)
			assert.True(t, categorized[i].AutoCategorized)
		}
	}
}

func TestOverride_Errors(t *testing.T) {
	categorized := CategorizeAll(sampleExpenses(t), DefaultMappings(), "Matti")

	_, err := Override(categorized, "2099-01-001", "food")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Override(categorized, categorized[0].ID, " ")
	assert.Error(t, err)
}

func TestTotals(t *testing.T) {
	categorized := CategorizeAll(sampleExpenses(t), DefaultMappings(), "Matti")
	totals := Totals(categorized)

	assert.Equal(t, "58.07", totals["food"].StringFixed(2))
	assert.Equal(t, "950.00", totals["rent"].StringFixed(2))
	assert.Equal(t, "7.50", totals[model.Uncategorized].StringFixed(2))
}
