package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultCalculator(t *testing.T) *calculation.PaycheckCalculator {
	t.Helper()
	tables, err := DefaultTaxTables()
	require.NoError(t, err)
	pc, err := NewPaycheckCalculator(tables)
	require.NoError(t, err)
	return pc
}

func TestDefaultTaxTables_Metadata(t *testing.T) {
	tables, err := DefaultTaxTables()
	require.NoError(t, err)

	assert.Equal(t, 2021, tables.Metadata.TaxYear)
	assert.Len(t, tables.Federal, 4)
	assert.Len(t, tables.States, 51)
	assert.Equal(t, tables.Federal[domain.Single], tables.Federal[domain.MarriedFilingSeparately],
		"separate filers share the single table")
}

func TestDefaultTaxTables_Federal(t *testing.T) {
	pc := defaultCalculator(t)

	tests := []struct {
		status domain.FilingStatus
		income string
		want   string
	}{
		{domain.Single, "50000", "7504.44"},
		{domain.MarriedFilingSeparately, "50000", "7504.44"},
		{domain.MarriedFilingJointly, "50000", "4295"},
		{domain.HeadOfHousehold, "50000", "6080"},
		{domain.Single, "6275", "0"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status)+"/"+tt.income, func(t *testing.T) {
			got, err := pc.Federal.Compute(dec(tt.income), tt.status)
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDefaultTaxTables_Payroll(t *testing.T) {
	pc := defaultCalculator(t)

	ss, err := pc.SocialSecurity.Compute(dec("200000"), domain.HeadOfHousehold)
	require.NoError(t, err)
	assert.True(t, dec("8853.6").Equal(ss), "got %s", ss)

	medicare, err := pc.Medicare.Compute(dec("300000"), domain.MarriedFilingJointly)
	require.NoError(t, err)
	assert.True(t, dec("4800").Equal(medicare), "got %s", medicare)
}

func TestDefaultTaxTables_States(t *testing.T) {
	pc := defaultCalculator(t)

	tests := []struct {
		code      string
		status    domain.FilingStatus
		income    string
		want      string
		kind      calculation.VariantKind
		undefined bool
	}{
		{"TX", domain.Single, "80000", "0", calculation.VariantFlatRate, false},
		{"NC", domain.Single, "80000", "3635.625", calculation.VariantFlatRate, false},
		{"NJ", domain.MarriedFilingJointly, "100000", "2750", calculation.VariantBracketed, false},
		{"OH", domain.Single, "30000", "138.25", calculation.VariantBracketed, false},
		{"AL", domain.Single, "80000", "0", calculation.VariantUnknown, true},
		{"ZZ", domain.Single, "80000", "0", calculation.VariantUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			res := pc.State.Withholding(tt.code, dec(tt.income), tt.status)
			assert.True(t, dec(tt.want).Equal(res.Amount), "want %s, got %s", tt.want, res.Amount)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.undefined, res.Undefined)
		})
	}

	counts := map[calculation.VariantKind]int{}
	for _, e := range pc.State.States() {
		counts[e.Variant.Kind()]++
	}
	assert.Equal(t, 18, counts[calculation.VariantFlatRate])
	assert.Equal(t, 11, counts[calculation.VariantBracketed])
	assert.Equal(t, 22, counts[calculation.VariantUnknown])
}

func TestLoadTaxTables_FromFile(t *testing.T) {
	doc := `
metadata:
  tax_year: 2021
federal:
  single:
    - {min: 0, max: 10000, rate: 0}
    - {min: 10000, rate: 0.1}
  married_filing_jointly:
    - {min: 0, rate: 0.1}
  head_of_household:
    - {min: 0, rate: 0.1}
social_security:
  single:
    - {min: 0, rate: 0.062}
medicare:
  single:
    - {min: 0, rate: 0.0145}
states:
  XX:
    name: Flatland
    flat_rate: 0.02
`
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	tables, err := LoadTaxTables(path)
	require.NoError(t, err)
	pc, err := NewPaycheckCalculator(tables)
	require.NoError(t, err)

	fed, err := pc.Federal.Compute(dec("30000"), domain.MarriedFilingSeparately)
	require.NoError(t, err)
	assert.True(t, dec("2000").Equal(fed), "got %s", fed)
	assert.True(t, dec("600").Equal(pc.State.Compute("xx", dec("30000"), domain.Single)))
}

func TestLoadTaxTables_Empty(t *testing.T) {
	tables, err := LoadTaxTables("")
	require.NoError(t, err)
	assert.Equal(t, 2021, tables.Metadata.TaxYear)
}

func TestLoadTaxTables_Errors(t *testing.T) {
	_, err := LoadTaxTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read tax tables")

	_, err = ParseTaxTables([]byte("federal: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse tax tables")

	_, err = ParseTaxTables([]byte("metadata:\n  tax_year: 2021\n"))
	assert.ErrorContains(t, err, "no federal section")

	_, err = ParseTaxTables([]byte("federal:\n  widowed:\n    - {min: 0, rate: 0.1}\n"))
	assert.ErrorContains(t, err, "unknown filing status")
}

func TestNewPaycheckCalculator_RejectsMalformedTables(t *testing.T) {
	tables, err := DefaultTaxTables()
	require.NoError(t, err)

	gap := dec("1000")
	tables.Federal[domain.Single] = []domain.BracketConfig{
		{Min: decimal.Zero, Max: &gap, Rate: dec("0.1")},
		{Min: dec("2000"), Rate: dec("0.2")},
	}
	_, err = NewPaycheckCalculator(tables)
	assert.ErrorIs(t, err, calculation.ErrNonContiguous)

	tables, err = DefaultTaxTables()
	require.NoError(t, err)
	rate := dec("0.05")
	tables.States["CA"] = domain.StateTaxConfig{Name: "California", FlatRate: &rate, Brackets: tables.States["CA"].Brackets}
	_, err = NewPaycheckCalculator(tables)
	assert.ErrorIs(t, err, calculation.ErrAmbiguousStateVariant)
}

func TestPaycheckFromExampleInput(t *testing.T) {
	input, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "paycheck.yaml"))
	require.NoError(t, err)

	b, err := defaultCalculator(t).Compute(*input)
	require.NoError(t, err)
	assert.True(t, dec("2000").Equal(b.GrossPay))
	assert.True(t, dec("1000").Equal(b.PreTaxDeduction), "first period runs at the maximum, got %s", b.PreTaxDeduction)
	assert.False(t, b.StateUndefined)
}
