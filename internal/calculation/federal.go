package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrUnknownFilingStatus = errors.New("unknown filing status")

// FederalWithholdingCalculator applies the annual percentage-method tables
type FederalWithholdingCalculator struct {
	tables FilingStatusTables
}

// NewFederalWithholdingCalculator requires tables for single, married filing
// jointly and head of household. Married filing separately withholds exactly
// like single; when its table is missing it shares single's.
func NewFederalWithholdingCalculator(tables FilingStatusTables) (*FederalWithholdingCalculator, error) {
	for _, status := range []domain.FilingStatus{domain.Single, domain.MarriedFilingJointly, domain.HeadOfHousehold} {
		if tables[status] == nil {
			return nil, fmt.Errorf("federal withholding: missing table for %s", status)
		}
	}
	complete := make(FilingStatusTables, len(domain.FilingStatuses))
	for status, t := range tables {
		complete[status] = t
	}
	if complete[domain.MarriedFilingSeparately] == nil {
		complete[domain.MarriedFilingSeparately] = complete[domain.Single]
	}
	return &FederalWithholdingCalculator{tables: complete}, nil
}

// Compute returns annual federal withholding on income
func (fc *FederalWithholdingCalculator) Compute(income decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, error) {
	t, err := fc.tables.Lookup(status)
	if err != nil {
		return decimal.Zero, err
	}
	return t.Evaluate(income), nil
}

// Table exposes the bracket table for status
func (fc *FederalWithholdingCalculator) Table(status domain.FilingStatus) (*BracketTable, error) {
	return fc.tables.Lookup(status)
}
