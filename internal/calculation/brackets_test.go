package calculation

import (
	"testing"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBracketTable_CumulativeColumn(t *testing.T) {
	table, err := NewBracketTable(single2021())
	require.NoError(t, err)

	want := []string{"0", "0", "497.5", "2332.06", "7375.56", "16801.56", "23921.56", "78902.01"}
	got := table.Rows()
	require.Len(t, got, len(want))
	for i, w := range want {
		assertDecimal(t, w, got[i].CumulativeBelow)
	}
}

func TestNewBracketTable_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		brackets []Bracket
		wantErr  error
	}{
		{
			name:     "empty",
			brackets: nil,
			wantErr:  ErrEmptyTable,
		},
		{
			name: "gap between rows",
			brackets: []Bracket{
				{Min: dec("0"), Max: dec("100"), Rate: dec("0.1")},
				{Min: dec("101"), Rate: dec("0.2"), Open: true},
			},
			wantErr: ErrNonContiguous,
		},
		{
			name: "does not start at zero",
			brackets: []Bracket{
				{Min: dec("10"), Max: dec("100"), Rate: dec("0.1")},
				{Min: dec("100"), Rate: dec("0.2"), Open: true},
			},
			wantErr: ErrNonContiguous,
		},
		{
			name: "no open row",
			brackets: []Bracket{
				{Min: dec("0"), Max: dec("100"), Rate: dec("0.1")},
				{Min: dec("100"), Max: dec("200"), Rate: dec("0.2")},
			},
			wantErr: ErrMissingOpenRow,
		},
		{
			name: "open row in the middle",
			brackets: []Bracket{
				{Min: dec("0"), Rate: dec("0.1"), Open: true},
				{Min: dec("100"), Rate: dec("0.2"), Open: true},
			},
			wantErr: ErrMissingOpenRow,
		},
		{
			name: "inverted row",
			brackets: []Bracket{
				{Min: dec("0"), Max: dec("0"), Rate: dec("0.1")},
				{Min: dec("0"), Rate: dec("0.2"), Open: true},
			},
			wantErr: ErrNonContiguous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewBracketTable(tt.brackets)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, table)
		})
	}
}

func TestMustBracketTable_Panics(t *testing.T) {
	assert.Panics(t, func() { MustBracketTable(nil) })
}

func TestBracketTable_Evaluate(t *testing.T) {
	table := MustBracketTable(single2021())

	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "0"},
		{"inside zero-rate row", "5000", "0"},
		{"first boundary", "6275", "0"},
		{"inside ten percent", "10000", "372.5"},
		{"boundary belongs to upper row", "49463", "7375.56"},
		{"scenario single 50000", "50000", "7504.44"},
		{"open row", "300000", "90714.26"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, table.Evaluate(dec(tt.amount)))
		})
	}
}

func TestBracketTable_BoundarySelectsUpperRow(t *testing.T) {
	table := MustBracketTable(single2021())
	assertDecimal(t, "0.24", table.MarginalRate(dec("49463")))
	assertDecimal(t, "0.22", table.MarginalRate(dec("49462.99")))
	assertDecimal(t, "0", table.MarginalRate(decimal.Zero))
}

func TestBracketTable_ContinuousAtBoundaries(t *testing.T) {
	table := MustBracketTable(single2021())
	eps := dec("0.0001")
	for _, r := range table.Rows() {
		if r.Open {
			continue
		}
		below := table.Evaluate(r.Max.Sub(eps))
		at := table.Evaluate(r.Max)
		jump := at.Sub(below)
		// no jump beyond the marginal rate applied to eps
		assert.True(t, jump.LessThanOrEqual(eps.Mul(r.Rate)), "jump %s at %s", jump, r.Max)
		assert.False(t, jump.IsNegative(), "negative jump at %s", r.Max)
	}
}

func TestBracketTable_Monotonic(t *testing.T) {
	table := MustBracketTable(mfj2021())
	prev := table.Evaluate(decimal.Zero)
	for amount := int64(0); amount <= 400000; amount += 1250 {
		cur := table.Evaluate(decimal.NewFromInt(amount))
		assert.True(t, cur.GreaterThanOrEqual(prev), "evaluate(%d) = %s < %s", amount, cur, prev)
		prev = cur
	}
}

func TestBracketTableFromConfig(t *testing.T) {
	table, err := BracketTableFromConfig([]domain.BracketConfig{
		{Min: dec("0"), Max: decPtr("1000"), Rate: dec("0.01")},
		{Min: dec("1000"), Rate: dec("0.02")},
	})
	require.NoError(t, err)
	assertDecimal(t, "30", table.Evaluate(dec("2000")))

	_, err = BracketTableFromConfig([]domain.BracketConfig{
		{Min: dec("0"), Max: decPtr("1000"), Rate: dec("0.01")},
	})
	assert.ErrorIs(t, err, ErrMissingOpenRow)
}

func TestFilingStatusTablesFromConfig_UnknownStatus(t *testing.T) {
	_, err := FilingStatusTablesFromConfig(map[domain.FilingStatus][]domain.BracketConfig{
		"widowed": {{Min: dec("0"), Rate: dec("0.1")}},
	})
	assert.ErrorIs(t, err, ErrUnknownFilingStatus)
}
