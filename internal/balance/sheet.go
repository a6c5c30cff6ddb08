package balance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PersonBalance is one side of a balance sheet. A positive Balance means the
// person owes the other partner; negative means they are owed.
type PersonBalance struct {
	Name       string          `json:"name"`
	FairShare  decimal.Decimal `json:"fair_share"`
	ActualPaid decimal.Decimal `json:"actual_paid"`
	Balance    decimal.Decimal `json:"balance"`
}

// Sheet is a monthly balance sheet.
type Sheet struct {
	TotalShared decimal.Decimal            `json:"total_shared_expenses"`
	ByCategory  map[string]decimal.Decimal `json:"by_category"`
	A           PersonBalance              `json:"person_a"`
	B           PersonBalance              `json:"person_b"`
	Summary     string                     `json:"summary"`
}

// balancedThreshold is the smallest difference worth settling (one cent).
var balancedThreshold = decimal.New(1, -2)

// MonthlyBalance builds the balance sheet for c.
func MonthlyBalance(c *Contribution) Sheet {
	fairA, fairB := FairShares(c)
	paidA := sum(c.A.SharedExpensesPaid)
	paidB := sum(c.B.SharedExpensesPaid)

	balanceA := fairA.Sub(paidA)

	byCategory := make(map[string]decimal.Decimal, len(c.SharedExpenses))
	for k, v := range c.SharedExpenses {
		byCategory[k] = v
	}

	return Sheet{
		TotalShared: c.TotalShared(),
		ByCategory:  byCategory,
		A: PersonBalance{
			Name:       c.A.Name,
			FairShare:  fairA,
			ActualPaid: paidA,
			Balance:    balanceA,
		},
		B: PersonBalance{
			Name:       c.B.Name,
			FairShare:  fairB,
			ActualPaid: paidB,
			Balance:    balanceA.Neg(),
		},
		Summary: Summary(c.A.Name, c.B.Name, balanceA),
	}
}

// Summary renders who owes whom, given person A's balance.
func Summary(nameA, nameB string, balanceA decimal.Decimal) string {
	if balanceA.Abs().LessThan(balancedThreshold) {
		return "All expenses are perfectly balanced"
	}

	debtor, creditor := nameA, nameB
	if balanceA.IsNegative() {
		debtor, creditor = nameB, nameA
	}
	return fmt.Sprintf("%s owes %s €%s", debtor, creditor, balanceA.Abs().StringFixed(2))
}
