package balance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/pennywise-app/pennywise/internal/categorize"
	"github.com/pennywise-app/pennywise/internal/importer"
	plog "github.com/pennywise-app/pennywise/internal/log"
	"github.com/pennywise-app/pennywise/internal/model"
)

// Partner is one side of the household with the statement to import.
type Partner struct {
	Name      string
	Income    decimal.Decimal
	Statement string
}

// Household is the input to ProcessMonth.
type Household struct {
	A, B     Partner
	Mappings categorize.Mappings
	Registry *importer.Registry
}

// ProcessMonth imports both partners' statements, categorizes their expenses
// and treats every expense as shared.
func ProcessMonth(ctx context.Context, h Household) (Sheet, error) {
	reg := h.Registry
	if reg == nil {
		reg = importer.DefaultRegistry()
	}
	mappings := h.Mappings
	if mappings == nil {
		mappings = categorize.DefaultMappings()
	}

	logger := plog.WithComponent(ctx, "balance")

	var expensesA, expensesB []model.CategorizedTransaction
	g, ctx := errgroup.WithContext(ctx)
	load := func(p Partner, out *[]model.CategorizedTransaction) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := importer.ImportFile(reg, p.Statement, "")
			if err != nil {
				return fmt.Errorf("loading statement for %s: %w", p.Name, err)
			}
			*out = categorize.CategorizeAll(report.Expenses, mappings, p.Name)
			logger.Debug().
				Str(plog.FieldOwner, p.Name).
				Str(plog.FieldPath, p.Statement).
				Int(plog.FieldCount, len(*out)).
				Msg("statement loaded")
			return nil
		}
	}
	g.Go(load(h.A, &expensesA))
	g.Go(load(h.B, &expensesB))
	if err := g.Wait(); err != nil {
		return Sheet{}, err
	}

	return FromTransactions(h.A, h.B, append(expensesA, expensesB...))
}

// FromTransactions builds a sheet from already categorized expenses, each
// attributed to its owner and counted as shared.
func FromTransactions(a, b Partner, txns []model.CategorizedTransaction) (Sheet, error) {
	c := NewContribution(NewPerson(a.Name, a.Income), NewPerson(b.Name, b.Income))
	for _, t := range txns {
		if err := c.AddExpense(t.Category, t.Amount, t.Owner, true); err != nil {
			return Sheet{}, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
	}
	return MonthlyBalance(c), nil
}
