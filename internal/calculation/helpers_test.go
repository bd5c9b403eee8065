package calculation

import (
	"testing"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// rows builds contiguous brackets from upper bounds; the last rate is the open row
func rows(bounds []string, rates []string) []Bracket {
	out := make([]Bracket, len(rates))
	lower := decimal.Zero
	for i, r := range rates {
		out[i] = Bracket{Min: lower, Rate: dec(r)}
		if i < len(bounds) {
			out[i].Max = dec(bounds[i])
			lower = out[i].Max
		} else {
			out[i].Open = true
		}
	}
	return out
}

// single2021 is the annual percentage-method table for single filers with
// the Step 2 box checked
func single2021() []Bracket {
	return rows(
		[]string{"6275", "11250", "26538", "49463", "88738", "110988", "268075"},
		[]string{"0", "0.10", "0.12", "0.22", "0.24", "0.32", "0.35", "0.37"},
	)
}

func mfj2021() []Bracket {
	return rows(
		[]string{"12550", "22500", "53075", "98925", "177475", "221975", "326700"},
		[]string{"0", "0.10", "0.12", "0.22", "0.24", "0.32", "0.35", "0.37"},
	)
}

func hoh2021() []Bracket {
	return rows(
		[]string{"9400", "16500", "36500", "52575", "91850", "114100", "271200"},
		[]string{"0", "0.10", "0.12", "0.22", "0.24", "0.32", "0.35", "0.37"},
	)
}

func testFederal(t *testing.T) *FederalWithholdingCalculator {
	t.Helper()
	fc, err := NewFederalWithholdingCalculator(FilingStatusTables{
		domain.Single:               MustBracketTable(single2021()),
		domain.MarriedFilingJointly: MustBracketTable(mfj2021()),
		domain.HeadOfHousehold:      MustBracketTable(hoh2021()),
	})
	require.NoError(t, err)
	return fc
}

func testSocialSecurity(t *testing.T) *PayrollTaxCalculator {
	t.Helper()
	pc, err := NewPayrollTaxCalculator("social security", FilingStatusTables{
		domain.Single: MustBracketTable(rows([]string{"142800"}, []string{"0.062", "0"})),
	})
	require.NoError(t, err)
	return pc
}

func testMedicare(t *testing.T) *PayrollTaxCalculator {
	t.Helper()
	pc, err := NewPayrollTaxCalculator("medicare", FilingStatusTables{
		domain.Single:                  MustBracketTable(rows([]string{"200000"}, []string{"0.0145", "0.0235"})),
		domain.MarriedFilingJointly:    MustBracketTable(rows([]string{"250000"}, []string{"0.0145", "0.0235"})),
		domain.MarriedFilingSeparately: MustBracketTable(rows([]string{"125000"}, []string{"0.0145", "0.0235"})),
	})
	require.NoError(t, err)
	return pc
}

func testStates(t *testing.T) *StateWithholdingCalculator {
	t.Helper()
	ca := Bracketed{
		Brackets: MustBracketTable(rows(
			[]string{"9325", "22107", "34892", "48435", "61214", "312686", "375221", "625369"},
			[]string{"0.01", "0.02", "0.04", "0.06", "0.08", "0.093", "0.103", "0.113", "0.123"},
		)),
		Married: MustBracketTable(rows(
			[]string{"18650", "44214", "69784", "96870", "122428", "625372", "750442", "1250738"},
			[]string{"0.01", "0.02", "0.04", "0.06", "0.08", "0.093", "0.103", "0.113", "0.123"},
		)),
		Deductions: Deductions{Standard: decPtr("4803"), Married: decPtr("9606")},
	}
	return NewStateWithholdingCalculator([]StateEntry{
		{Code: "FL", Name: "Florida", Variant: FlatRate{Rate: decimal.Zero}},
		{Code: "PA", Name: "Pennsylvania", Variant: FlatRate{Rate: dec("0.0307")}},
		{Code: "NC", Name: "North Carolina", Variant: FlatRate{Rate: dec("0.0525"), Deductions: Deductions{Standard: decPtr("10750"), Married: decPtr("21500")}}},
		{Code: "CA", Name: "California", Variant: ca},
		{Code: "VA", Name: "Virginia", Variant: Bracketed{
			Brackets:   MustBracketTable(rows([]string{"3000", "5000", "17000"}, []string{"0.02", "0.03", "0.05", "0.0575"})),
			Deductions: Deductions{Standard: decPtr("4500")},
		}},
		{Code: "HI", Name: "Hawaii", Variant: Unknown{}},
	})
}
