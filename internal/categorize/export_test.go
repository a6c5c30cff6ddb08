package categorize

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/ledger"
)

func TestSave_CSV(t *testing.T) {
	categorized := CategorizeAll(sampleExpenses(t), DefaultMappings(), "Matti")
	path := filepath.Join(t.TempDir(), "categorized.csv")
	require.NoError(t, Save(path, categorized, "csv"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	back, err := ledger.ReadTransactions(f)
	require.NoError(t, err)
	require.Len(t, back, len(categorized))
	assert.Equal(t, categorized[0].Category, back[0].Category)
	assert.True(t, categorized[0].Amount.Equal(back[0].Amount))
}

func TestSave_JSON(t *testing.T) {
	categorized := CategorizeAll(sampleExpenses(t), DefaultMappings(), "Matti")
	path := filepath.Join(t.TempDir(), "categorized.json")
	require.NoError(t, Save(path, categorized, "JSON"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "MEHILÄINEN", "non-ASCII text is written as UTF-8")

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, len(categorized))
	assert.Equal(t, "950.00", records[0]["amount"])
	assert.Equal(t, "rent", records[0]["category"])
	assert.Equal(t, true, records[0]["auto_categorized"])
}

func TestSave_UnsupportedFormat(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "x.xml"), nil, "xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
