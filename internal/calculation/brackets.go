package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyTable     = errors.New("bracket table has no rows")
	ErrNonContiguous  = errors.New("bracket rows are not contiguous")
	ErrMissingOpenRow = errors.New("bracket table must end with exactly one open row")
)

// Bracket is a marginal rate over [Min, Max). When Open is set the row has no
// upper bound and Max is ignored.
type Bracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
	Open bool
}

// BracketRow is a Bracket plus the amount owed on everything below Min
type BracketRow struct {
	Bracket
	CumulativeBelow decimal.Decimal
}

// contains reports whether amount falls in this row. Boundaries belong to
// the upper row.
func (r BracketRow) contains(amount decimal.Decimal) bool {
	return r.Open || r.Max.GreaterThan(amount)
}

// BracketTable is an immutable progressive table. The cumulative column is
// derived once at construction.
type BracketTable struct {
	rows []BracketRow
}

// NewBracketTable validates brackets and precomputes the cumulative column
func NewBracketTable(brackets []Bracket) (*BracketTable, error) {
	if len(brackets) == 0 {
		return nil, ErrEmptyTable
	}
	for i, b := range brackets {
		last := i == len(brackets)-1
		if b.Open != last {
			return nil, fmt.Errorf("row %d: %w", i, ErrMissingOpenRow)
		}
		if !b.Open && !b.Max.GreaterThan(b.Min) {
			return nil, fmt.Errorf("row %d: upper bound %s not above lower bound %s: %w", i, b.Max, b.Min, ErrNonContiguous)
		}
		if i == 0 && !b.Min.IsZero() {
			return nil, fmt.Errorf("row 0 starts at %s, want 0: %w", b.Min, ErrNonContiguous)
		}
		if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
			return nil, fmt.Errorf("row %d starts at %s but row %d ends at %s: %w", i, b.Min, i-1, brackets[i-1].Max, ErrNonContiguous)
		}
	}
	return &BracketTable{rows: withCumulative(brackets)}, nil
}

// MustBracketTable is NewBracketTable for static data; it panics on a bad table
func MustBracketTable(brackets []Bracket) *BracketTable {
	t, err := NewBracketTable(brackets)
	if err != nil {
		panic(err)
	}
	return t
}

// BracketTableFromConfig converts YAML rows. A row without max is the open row.
func BracketTableFromConfig(rows []domain.BracketConfig) (*BracketTable, error) {
	brackets := make([]Bracket, len(rows))
	for i, r := range rows {
		brackets[i] = Bracket{Min: r.Min, Rate: r.Rate, Open: r.Max == nil}
		if r.Max != nil {
			brackets[i].Max = *r.Max
		}
	}
	return NewBracketTable(brackets)
}

func withCumulative(brackets []Bracket) []BracketRow {
	rows := make([]BracketRow, len(brackets))
	cumulative := decimal.Zero
	for i, b := range brackets {
		rows[i] = BracketRow{Bracket: b, CumulativeBelow: cumulative}
		if !b.Open {
			cumulative = cumulative.Add(b.Max.Sub(b.Min).Mul(b.Rate))
		}
	}
	return rows
}

// Evaluate returns the amount owed on a non-negative amount
func (t *BracketTable) Evaluate(amount decimal.Decimal) decimal.Decimal {
	row := t.rowFor(amount)
	return row.CumulativeBelow.Add(amount.Sub(row.Min).Mul(row.Rate))
}

// MarginalRate returns the rate applied to the next dollar above amount
func (t *BracketTable) MarginalRate(amount decimal.Decimal) decimal.Decimal {
	return t.rowFor(amount).Rate
}

func (t *BracketTable) rowFor(amount decimal.Decimal) BracketRow {
	for _, r := range t.rows {
		if r.contains(amount) {
			return r
		}
	}
	// unreachable: construction guarantees an open final row
	return t.rows[len(t.rows)-1]
}

// Rows returns a copy of the table rows including the cumulative column
func (t *BracketTable) Rows() []BracketRow {
	out := make([]BracketRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// FilingStatusTables keys one bracket table per filing status
type FilingStatusTables map[domain.FilingStatus]*BracketTable

// Lookup returns the table for status
func (ft FilingStatusTables) Lookup(status domain.FilingStatus) (*BracketTable, error) {
	t, ok := ft[status]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilingStatus, status)
	}
	return t, nil
}

// FilingStatusTablesFromConfig builds and validates every status's table
func FilingStatusTablesFromConfig(cfg map[domain.FilingStatus][]domain.BracketConfig) (FilingStatusTables, error) {
	tables := make(FilingStatusTables, len(cfg))
	for status, rows := range cfg {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFilingStatus, status)
		}
		t, err := BracketTableFromConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", status, err)
		}
		tables[status] = t
	}
	return tables, nil
}
