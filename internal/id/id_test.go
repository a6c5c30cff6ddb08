package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTxnID(t *testing.T) {
	tests := []struct {
		year, month, seq int
		want             string
	}{
		{2024, 3, 1, "2024-03-001"},
		{2024, 12, 99, "2024-12-099"},
		{2024, 1, 1234, "2024-01-1234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTxnID(tt.year, tt.month, tt.seq))
	}
}

func TestForDate(t *testing.T) {
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-004", ForDate(d, 4))
}

func TestParseTxnID(t *testing.T) {
	year, month, seq, err := ParseTxnID("2024-03-007")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 3, month)
	assert.Equal(t, 7, seq)
}

func TestParseTxnID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"not-valid",
		"2024-03",
		"xxxx-03-001",
		"2024-13-001",
		"2024-03-000",
		"2024-03-abc",
	}
	for _, input := range badInputs {
		_, _, _, err := ParseTxnID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestMaxSeq(t *testing.T) {
	assert.Equal(t, 0, MaxSeq(nil))
	assert.Equal(t, 12, MaxSeq([]string{"2024-03-002", "garbage", "2024-03-012", "2024-03-005"}))
}
