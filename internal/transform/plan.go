package transform

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func checkPercent(name, field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return NewTransformError(name, "validate", fmt.Sprintf("%s must be between 0 and 100, got %s", field, v), nil)
	}
	return nil
}

// SetMaxPercent changes the front-loaded contribution percent
type SetMaxPercent struct {
	Percent decimal.Decimal
}

func (t *SetMaxPercent) Name() string { return "set_max_percent" }

func (t *SetMaxPercent) Description() string {
	return fmt.Sprintf("Front-load at %s%% of pay", t.Percent)
}

func (t *SetMaxPercent) Validate(base domain.ContributionParameters) error {
	if err := checkPercent(t.Name(), "percent", t.Percent); err != nil {
		return err
	}
	if t.Percent.LessThan(base.MinContributionPercent) {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("percent %s is below the minimum %s", t.Percent, base.MinContributionPercent), nil)
	}
	return nil
}

func (t *SetMaxPercent) Apply(base domain.ContributionParameters) (domain.ContributionParameters, error) {
	base.MaxContributionPercent = t.Percent
	return base, nil
}

// SetMinPercent changes the percent contributed once front-loading is done
type SetMinPercent struct {
	Percent decimal.Decimal
}

func (t *SetMinPercent) Name() string { return "set_min_percent" }

func (t *SetMinPercent) Description() string {
	return fmt.Sprintf("Contribute at least %s%% of pay every paycheck", t.Percent)
}

func (t *SetMinPercent) Validate(base domain.ContributionParameters) error {
	if err := checkPercent(t.Name(), "percent", t.Percent); err != nil {
		return err
	}
	if t.Percent.GreaterThan(base.MaxContributionPercent) {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("percent %s exceeds the maximum %s", t.Percent, base.MaxContributionPercent), nil)
	}
	return nil
}

func (t *SetMinPercent) Apply(base domain.ContributionParameters) (domain.ContributionParameters, error) {
	base.MinContributionPercent = t.Percent
	return base, nil
}

// SetAutomaticCap turns exact landing on the individual cap on or off
type SetAutomaticCap struct {
	Enabled bool
}

func (t *SetAutomaticCap) Name() string { return "set_auto_cap" }

func (t *SetAutomaticCap) Description() string {
	if t.Enabled {
		return "Adjust the closing paycheck to land exactly on the cap"
	}
	return "Keep whole-percent contributions on every paycheck"
}

func (t *SetAutomaticCap) Validate(domain.ContributionParameters) error { return nil }

func (t *SetAutomaticCap) Apply(base domain.ContributionParameters) (domain.ContributionParameters, error) {
	base.AutomaticallyCap = t.Enabled
	return base, nil
}

// SetIndividualCap changes the elective deferral limit
type SetIndividualCap struct {
	Amount decimal.Decimal
}

func (t *SetIndividualCap) Name() string { return "set_individual_cap" }

func (t *SetIndividualCap) Description() string {
	return fmt.Sprintf("Individual cap of $%s", t.Amount.StringFixed(2))
}

func (t *SetIndividualCap) Validate(domain.ContributionParameters) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetIndividualCap) Apply(base domain.ContributionParameters) (domain.ContributionParameters, error) {
	base.IndividualCapAmount = t.Amount
	return base, nil
}

// EvenSpread replaces front-loading with one percent for every remaining
// paycheck, the smallest whole percent that reaches the cap. Automatic
// capping trims the paycheck that would overshoot.
type EvenSpread struct{}

func (t *EvenSpread) Name() string { return "even_spread" }

func (t *EvenSpread) Description() string {
	return "Contribute the same percent every paycheck instead of front-loading"
}

func (t *EvenSpread) Validate(base domain.ContributionParameters) error {
	if !base.Salary.IsPositive() {
		return NewTransformError(t.Name(), "validate", "salary must be positive", nil)
	}
	if base.TotalPayPeriods <= 0 || base.PayPeriodsElapsed >= base.TotalPayPeriods {
		return NewTransformError(t.Name(), "validate", "no pay periods remain", nil)
	}
	return nil
}

func (t *EvenSpread) Apply(base domain.ContributionParameters) (domain.ContributionParameters, error) {
	pay := base.Salary.Div(decimal.NewFromInt(int64(base.TotalPayPeriods)))
	remaining := decimal.NewFromInt(int64(base.TotalPayPeriods - base.PayPeriodsElapsed))
	gap := decimal.Max(base.IndividualCapAmount.Sub(base.IndividualContributedSoFar), decimal.Zero)

	percent := gap.Mul(hundred).Div(pay.Mul(remaining)).Ceil()
	percent = decimal.Min(percent, base.MaxContributionPercent)

	base.MinContributionPercent = percent
	base.MaxContributionPercent = percent
	base.AutomaticallyCap = true
	return base, nil
}

// MatchFloor raises the minimum percent to the employer's match limit so no
// paycheck after front-loading gives up matching money. The maximum is raised
// with it when needed.
type MatchFloor struct{}

func (t *MatchFloor) Name() string { return "match_floor" }

func (t *MatchFloor) Description() string {
	return "Never contribute less than the employer match limit"
}

func (t *MatchFloor) Validate(base domain.ContributionParameters) error {
	return checkPercent(t.Name(), "match limit", base.EmployerMatchUpToPercent)
}

func (t *MatchFloor) Apply(base domain.ContributionParameters) (domain.ContributionParameters, error) {
	base.MinContributionPercent = decimal.Max(base.MinContributionPercent, base.EmployerMatchUpToPercent)
	base.MaxContributionPercent = decimal.Max(base.MaxContributionPercent, base.MinContributionPercent)
	return base, nil
}
