package domain

import (
	"github.com/shopspring/decimal"
)

// PaycheckInput is the complete input document: who is paid, where, and how
// the 401(k) plan is set up.
type PaycheckInput struct {
	Name         string                 `yaml:"name,omitempty" json:"name,omitempty"`
	FilingStatus FilingStatus           `yaml:"filing_status" json:"filing_status"`
	State        string                 `yaml:"state" json:"state"`
	Contribution ContributionParameters `yaml:"contribution" json:"contribution"`

	// ContributionPercent is the pre-tax election used for the paycheck
	// breakdown; nil means "use the first upcoming period of the schedule"
	ContributionPercent *decimal.Decimal `yaml:"contribution_percent,omitempty" json:"contribution_percent,omitempty"`
	AfterTaxPercent     decimal.Decimal `yaml:"after_tax_percent,omitempty" json:"after_tax_percent,omitempty"`
}

// PaycheckBreakdown is the estimated withholding for one pay period plus the
// annual totals it was derived from
type PaycheckBreakdown struct {
	FilingStatus FilingStatus `json:"filingStatus"`
	State        string       `json:"state"`
	PayPeriods   int          `json:"payPeriods"`

	GrossPay           decimal.Decimal `json:"grossPay"`
	PreTaxDeduction    decimal.Decimal `json:"preTaxDeduction"`
	FederalWithholding decimal.Decimal `json:"federalWithholding"`
	SocialSecurity     decimal.Decimal `json:"socialSecurity"`
	Medicare           decimal.Decimal `json:"medicare"`
	StateWithholding   decimal.Decimal `json:"stateWithholding"`
	AfterTaxDeduction  decimal.Decimal `json:"afterTaxDeduction"`
	NetPay             decimal.Decimal `json:"netPay"`

	Annual AnnualWithholding `json:"annual"`

	// StateUndefined is set when no withholding data exists for State; the
	// state amount is then zero
	StateUndefined bool `json:"stateUndefined,omitempty"`
}

// AnnualWithholding holds the yearly amounts the per-period figures divide
type AnnualWithholding struct {
	GrossIncome    decimal.Decimal `json:"grossIncome"`
	TaxableIncome  decimal.Decimal `json:"taxableIncome"`
	Federal        decimal.Decimal `json:"federal"`
	SocialSecurity decimal.Decimal `json:"socialSecurity"`
	Medicare       decimal.Decimal `json:"medicare"`
	State          decimal.Decimal `json:"state"`
	PreTax         decimal.Decimal `json:"preTax"`
	AfterTax       decimal.Decimal `json:"afterTax"`
	Net            decimal.Decimal `json:"net"`
}

// TotalWithholding sums the four withholding lines of a single paycheck
func (b PaycheckBreakdown) TotalWithholding() decimal.Decimal {
	return b.FederalWithholding.Add(b.SocialSecurity).Add(b.Medicare).Add(b.StateWithholding)
}
