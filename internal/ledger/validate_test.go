package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pennywise-app/pennywise/internal/model"
)

func invariants(errs []ValidationError) []int {
	out := make([]int, len(errs))
	for i, e := range errs {
		out[i] = e.Invariant
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	txns := []model.CategorizedTransaction{
		txn("2024-03-001", "Alice", date(2024, 3, 2), "45.67", "food", "LIDL", "A1"),
		txn("2024-03-002", "Bob", date(2024, 3, 31), "1000", "rent", "SATO", "B1"),
	}
	assert.Empty(t, ValidateMonth(txns, alicebob, 2024, 3))
}

func TestValidate_DateOutsideMonth(t *testing.T) {
	txns := []model.CategorizedTransaction{
		txn("2024-03-001", "Alice", date(2024, 4, 1), "1.00", "food", "LIDL", "A1"),
	}
	assert.Contains(t, invariants(ValidateMonth(txns, alicebob, 2024, 3)), 1)
}

func TestValidate_NonPositiveAmount(t *testing.T) {
	txns := []model.CategorizedTransaction{
		txn("2024-03-001", "Alice", date(2024, 3, 1), "-1.00", "food", "LIDL", "A1"),
		txn("2024-03-002", "Alice", date(2024, 3, 1), "0", "food", "LIDL", "A2"),
	}
	assert.Equal(t, []int{2, 2}, invariants(ValidateMonth(txns, alicebob, 2024, 3)))
}

func TestValidate_TooManyDecimals(t *testing.T) {
	txns := []model.CategorizedTransaction{
		txn("2024-03-001", "Alice", date(2024, 3, 1), "1.005", "food", "LIDL", "A1"),
	}
	errs := ValidateMonth(txns, alicebob, 2024, 3)
	assert.Equal(t, []int{3}, invariants(errs))
	assert.Contains(t, errs[0].Error(), "more than 2 decimal places")
}

func TestValidate_EmptyCategory(t *testing.T) {
	txns := []model.CategorizedTransaction{
		txn("2024-03-001", "Alice", date(2024, 3, 1), "1.00", "", "LIDL", "A1"),
	}
	assert.Equal(t, []int{4}, invariants(ValidateMonth(txns, alicebob, 2024, 3)))
}

func TestValidate_UnknownOwner(t *testing.T) {
	txns := []model.CategorizedTransaction{
		txn("2024-03-001", "Charlie", date(2024, 3, 1), "1.00", "food", "LIDL", "A1"),
	}
	assert.Equal(t, []int{5}, invariants(ValidateMonth(txns, alicebob, 2024, 3)))
	assert.Empty(t, ValidateMonth(txns, nil, 2024, 3), "nil checker accepts any owner")
}

func TestValidate_IDs(t *testing.T) {
	dup := []model.CategorizedTransaction{
		txn("2024-03-001", "Alice", date(2024, 3, 1), "1.00", "food", "LIDL", "A1"),
		txn("2024-03-001", "Alice", date(2024, 3, 1), "2.00", "food", "LIDL", "A2"),
	}
	assert.Equal(t, []int{6}, invariants(ValidateMonth(dup, alicebob, 2024, 3)))

	wrongMonth := []model.CategorizedTransaction{
		txn("2024-04-001", "Alice", date(2024, 3, 1), "1.00", "food", "LIDL", "A1"),
	}
	assert.Equal(t, []int{6}, invariants(ValidateMonth(wrongMonth, alicebob, 2024, 3)))

	bad := []model.CategorizedTransaction{
		txn("garbage", "Alice", date(2024, 3, 1), "1.00", "food", "LIDL", "A1"),
	}
	assert.Equal(t, []int{6}, invariants(ValidateMonth(bad, alicebob, 2024, 3)))
}

func TestValidate_Gap(t *testing.T) {
	txns := []model.CategorizedTransaction{
		txn("2024-03-001", "Alice", date(2024, 3, 1), "1.00", "food", "LIDL", "A1"),
		txn("2024-03-003", "Alice", date(2024, 3, 1), "1.00", "food", "LIDL", "A2"),
	}
	errs := ValidateMonth(txns, alicebob, 2024, 3)
	assert.Equal(t, []int{7}, invariants(errs))
	assert.Contains(t, errs[0].Error(), "missing sequence 2")
}
