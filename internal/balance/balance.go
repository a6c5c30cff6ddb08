// Package balance splits shared household costs between two partners in
// proportion to their incomes and reports who owes whom.
package balance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownPerson is returned when an expense names someone outside the pair.
var ErrUnknownPerson = errors.New("unknown person")

// Person is one partner's financial data for a month.
type Person struct {
	Name               string
	MonthlyIncome      decimal.Decimal
	PersonalExpenses   map[string]decimal.Decimal // by category
	SharedExpensesPaid map[string]decimal.Decimal // by category
}

// NewPerson returns a Person with empty expense maps.
func NewPerson(name string, income decimal.Decimal) *Person {
	return &Person{
		Name:               name,
		MonthlyIncome:      income,
		PersonalExpenses:   make(map[string]decimal.Decimal),
		SharedExpensesPaid: make(map[string]decimal.Decimal),
	}
}

// Contribution tracks the expenses of two partners.
type Contribution struct {
	A, B           *Person
	SharedExpenses map[string]decimal.Decimal // by category
}

// NewContribution creates a tracker for a and b.
func NewContribution(a, b *Person) *Contribution {
	return &Contribution{A: a, B: b, SharedExpenses: make(map[string]decimal.Decimal)}
}

func (c *Contribution) person(name string) (*Person, error) {
	switch name {
	case c.A.Name:
		return c.A, nil
	case c.B.Name:
		return c.B, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPerson, name)
	}
}

// AddExpense records amount in category as paid by paidBy. Shared expenses
// count toward the household total; personal ones only toward the payer.
func (c *Contribution) AddExpense(category string, amount decimal.Decimal, paidBy string, shared bool) error {
	p, err := c.person(paidBy)
	if err != nil {
		return err
	}

	if shared {
		p.SharedExpensesPaid[category] = p.SharedExpensesPaid[category].Add(amount)
		c.SharedExpenses[category] = c.SharedExpenses[category].Add(amount)
		return nil
	}
	p.PersonalExpenses[category] = p.PersonalExpenses[category].Add(amount)
	return nil
}

// TotalShared returns the sum of all shared expenses.
func (c *Contribution) TotalShared() decimal.Decimal {
	return sum(c.SharedExpenses)
}

// SharedPaidBy returns how much of the shared expenses name has paid.
func (c *Contribution) SharedPaidBy(name string) (decimal.Decimal, error) {
	p, err := c.person(name)
	if err != nil {
		return decimal.Zero, err
	}
	return sum(p.SharedExpensesPaid), nil
}

func sum(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

var half = decimal.NewFromFloat(0.5)

// IncomeRatio returns each partner's share of the combined income.
// With no income at all the split is even.
func IncomeRatio(a, b *Person) (decimal.Decimal, decimal.Decimal) {
	total := a.MonthlyIncome.Add(b.MonthlyIncome)
	if total.IsZero() {
		return half, half
	}
	ratioA := a.MonthlyIncome.Div(total)
	return ratioA, decimal.NewFromInt(1).Sub(ratioA)
}

// FairShares returns how much of the shared total each partner should carry.
func FairShares(c *Contribution) (decimal.Decimal, decimal.Decimal) {
	ratioA, ratioB := IncomeRatio(c.A, c.B)
	total := c.TotalShared()
	return total.Mul(ratioA), total.Mul(ratioB)
}
