package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ContributionParameters describes one 401(k) plan year for a single employee.
// Percent fields are whole-number percents (6 means 6%). Range clamping is the
// caller's job; only internal consistency is checked when a schedule is built.
type ContributionParameters struct {
	Salary          decimal.Decimal `yaml:"salary" json:"salary"`
	TotalPayPeriods int             `yaml:"total_pay_periods" json:"total_pay_periods"`

	// PayPeriodsElapsed counts the paychecks already issued this year
	PayPeriodsElapsed int `yaml:"pay_periods_elapsed" json:"pay_periods_elapsed"`

	IndividualContributedSoFar decimal.Decimal `yaml:"individual_contributed_so_far" json:"individual_contributed_so_far"`
	EmployerContributedSoFar   decimal.Decimal `yaml:"employer_contributed_so_far" json:"employer_contributed_so_far"`
	AfterTaxContributedSoFar   decimal.Decimal `yaml:"after_tax_contributed_so_far" json:"after_tax_contributed_so_far"`

	// IndividualCapAmount is the elective deferral limit; TotalCapAmount
	// bounds all sources (individual, employer and after-tax) together
	IndividualCapAmount decimal.Decimal `yaml:"individual_cap_amount" json:"individual_cap_amount"`
	TotalCapAmount      decimal.Decimal `yaml:"total_cap_amount" json:"total_cap_amount"`

	MinContributionPercent decimal.Decimal `yaml:"min_contribution_percent" json:"min_contribution_percent"`
	MaxContributionPercent decimal.Decimal `yaml:"max_contribution_percent" json:"max_contribution_percent"`

	EmployerMatchBasePercent decimal.Decimal `yaml:"employer_match_base_percent" json:"employer_match_base_percent"`
	EmployerMatchPercent     decimal.Decimal `yaml:"employer_match_percent" json:"employer_match_percent"`
	EmployerMatchUpToPercent decimal.Decimal `yaml:"employer_match_up_to_percent" json:"employer_match_up_to_percent"`
	AutomaticallyCap         bool            `yaml:"automatically_cap" json:"automatically_cap"`
}

// RowFlags carries the status markers of a pay period row
type RowFlags struct {
	AlreadyPassed              bool `json:"alreadyPassed,omitempty"`
	MaxReachedEarly            bool `json:"maxReachedEarly,omitempty"`
	MaxNotReached              bool `json:"maxNotReached,omitempty"`
	MaxReachedWithAutomaticCap bool `json:"maxReachedWithAutomaticCap,omitempty"`
}

// Any reports whether any marker is set
func (f RowFlags) Any() bool {
	return f.AlreadyPassed || f.MaxReachedEarly || f.MaxNotReached || f.MaxReachedWithAutomaticCap
}

// PayPeriodRow is one paycheck of a contribution schedule
type PayPeriodRow struct {
	Index                  int             `json:"index"`
	GrossPay               decimal.Decimal `json:"grossPay"`
	ContributionFraction   decimal.Decimal `json:"contributionFraction"`
	ContributionAmount     decimal.Decimal `json:"contributionAmount"`
	CumulativeIndividual   decimal.Decimal `json:"cumulativeIndividual"`
	EmployerAmount         decimal.Decimal `json:"employerAmount"`
	CumulativeWithEmployer decimal.Decimal `json:"cumulativeWithEmployer"`
	AfterTaxFraction       decimal.Decimal `json:"afterTaxFraction"`
	AfterTaxAmount         decimal.Decimal `json:"afterTaxAmount"`
	CumulativeTotal        decimal.Decimal `json:"cumulativeTotal"`
	Flags                  RowFlags        `json:"flags"`
}

// Label is the one-based period number shown to users
func (r PayPeriodRow) Label() string {
	return strconv.Itoa(r.Index + 1)
}

// ContributionPercent returns the contribution fraction as a whole percent
func (r PayPeriodRow) ContributionPercent() decimal.Decimal {
	return r.ContributionFraction.Mul(decimal.NewFromInt(100))
}

// ScheduleResult is the full per-paycheck plan for a year
type ScheduleResult struct {
	Rows []PayPeriodRow `json:"rows"`

	MaxReachedEarly            bool `json:"maxReachedEarly"`
	MaxNotReached              bool `json:"maxNotReached"`
	MaxReachedWithAutomaticCap bool `json:"maxReachedWithAutomaticCap"`

	MaxEmployerAmount decimal.Decimal `json:"maxEmployerAmount"`
	MaxAfterTaxAmount decimal.Decimal `json:"maxAfterTaxAmount"`

	// Derived plan, for display
	PayPerPeriod      decimal.Decimal `json:"payPerPeriod"`
	MaxRatePeriods    int             `json:"maxRatePeriods"`
	TransitionPercent decimal.Decimal `json:"transitionPercent"`
}

// Final returns the last row, or the zero row for an empty schedule
func (s *ScheduleResult) Final() PayPeriodRow {
	if s == nil || len(s.Rows) == 0 {
		return PayPeriodRow{}
	}
	return s.Rows[len(s.Rows)-1]
}
