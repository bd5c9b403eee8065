package calculation

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// PayrollTaxCalculator evaluates a FICA component (Social Security or
// Medicare) on wages. Social Security's top row has a zero rate: above the
// wage base withholding flattens instead of accruing.
type PayrollTaxCalculator struct {
	Name   string
	tables FilingStatusTables
}

// NewPayrollTaxCalculator needs at least a single table; statuses without
// their own table use it
func NewPayrollTaxCalculator(name string, tables FilingStatusTables) (*PayrollTaxCalculator, error) {
	single := tables[domain.Single]
	if single == nil {
		return nil, fmt.Errorf("%s: missing table for %s", name, domain.Single)
	}
	complete := make(FilingStatusTables, len(domain.FilingStatuses))
	for _, status := range domain.FilingStatuses {
		if t := tables[status]; t != nil {
			complete[status] = t
		} else {
			complete[status] = single
		}
	}
	return &PayrollTaxCalculator{Name: name, tables: complete}, nil
}

// Compute returns the annual tax on wages
func (pc *PayrollTaxCalculator) Compute(wages decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, error) {
	t, err := pc.tables.Lookup(status)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", pc.Name, err)
	}
	return t.Evaluate(wages), nil
}
