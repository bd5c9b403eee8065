package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrInvalidSchedule = errors.New("invalid contribution parameters")

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ContributionScheduler builds a front-loaded 401(k) plan: the maximum
// percent for as many early paychecks as the cap allows, one transition
// paycheck, then the minimum percent so the employer match is never lost.
type ContributionScheduler struct {
	Logger Logger
}

// NewContributionScheduler creates a scheduler with a no-op logger
func NewContributionScheduler() *ContributionScheduler {
	return &ContributionScheduler{Logger: NopLogger{}}
}

// SetLogger installs l, or the no-op logger for nil
func (cs *ContributionScheduler) SetLogger(l Logger) {
	cs.Logger = loggerOrNop(l)
}

// GenerateSchedule runs a default scheduler
func GenerateSchedule(p domain.ContributionParameters) (*domain.ScheduleResult, error) {
	return NewContributionScheduler().Generate(p)
}

// contributionPlan is derived once per generation
type contributionPlan struct {
	pay       decimal.Decimal
	maxAmount decimal.Decimal
	minAmount decimal.Decimal
	remaining int

	// maxPeriods may be negative (minimum alone overshoots) or exceed
	// remaining (the cap is out of reach even at the maximum)
	maxPeriods        int
	hasTransition     bool
	transitionPercent decimal.Decimal
}

// percentFor returns the planned percent for the k-th upcoming paycheck
func (cp contributionPlan) percentFor(k int, p domain.ContributionParameters) decimal.Decimal {
	switch {
	case k < cp.maxPeriods:
		return p.MaxContributionPercent
	case cp.hasTransition && k == cp.maxPeriods:
		return cp.transitionPercent
	default:
		return p.MinContributionPercent
	}
}

func validateContributionParameters(p domain.ContributionParameters) error {
	if p.TotalPayPeriods <= 0 {
		return fmt.Errorf("%w: total pay periods must be positive, got %d", ErrInvalidSchedule, p.TotalPayPeriods)
	}
	if p.PayPeriodsElapsed < 0 || p.PayPeriodsElapsed >= p.TotalPayPeriods {
		return fmt.Errorf("%w: pay periods elapsed (%d) must be in [0, %d)", ErrInvalidSchedule, p.PayPeriodsElapsed, p.TotalPayPeriods)
	}
	if p.MinContributionPercent.GreaterThan(p.MaxContributionPercent) {
		return fmt.Errorf("%w: minimum contribution %s%% exceeds maximum %s%%", ErrInvalidSchedule, p.MinContributionPercent, p.MaxContributionPercent)
	}
	return nil
}

func (cs *ContributionScheduler) derivePlan(p domain.ContributionParameters) contributionPlan {
	pay := p.Salary.Div(decimal.NewFromInt(int64(p.TotalPayPeriods)))
	cp := contributionPlan{
		pay:       pay,
		maxAmount: p.MaxContributionPercent.Div(hundred).Mul(pay),
		minAmount: p.MinContributionPercent.Div(hundred).Mul(pay),
		remaining: p.TotalPayPeriods - p.PayPeriodsElapsed,
	}
	remaining := decimal.NewFromInt(int64(cp.remaining))

	numerator := p.IndividualContributedSoFar.Sub(p.IndividualCapAmount).Add(cp.minAmount.Mul(remaining))
	denominator := cp.minAmount.Sub(cp.maxAmount)
	if denominator.IsZero() {
		// x/0 is +Inf for a positive numerator (every period at the shared
		// rate) and -Inf or NaN otherwise (none); there is no transition
		cs.Logger.Warnf("minimum and maximum contribution amounts are equal (%s); no front-loading possible", cp.minAmount.StringFixed(2))
		if numerator.IsPositive() {
			cp.maxPeriods = cp.remaining
		}
		return cp
	}
	cp.maxPeriods = int(numerator.Div(denominator).Floor().IntPart())

	if cp.maxPeriods >= 0 && cp.maxPeriods < cp.remaining {
		minPeriods := decimal.NewFromInt(int64(cp.remaining - cp.maxPeriods - 1))
		residual := p.IndividualCapAmount.
			Sub(p.IndividualContributedSoFar).
			Sub(cp.maxAmount.Mul(decimal.NewFromInt(int64(cp.maxPeriods)))).
			Sub(cp.minAmount.Mul(minPeriods))
		cp.hasTransition = true
		cp.transitionPercent = floorPercent(residual, pay)
	}
	cs.Logger.Debugf("contribution plan: pay %s, %d max-rate periods of %d remaining, transition %s%%",
		pay.StringFixed(2), cp.maxPeriods, cp.remaining, cp.transitionPercent)
	return cp
}

// Generate builds the whole schedule from scratch
func (cs *ContributionScheduler) Generate(p domain.ContributionParameters) (*domain.ScheduleResult, error) {
	if err := validateContributionParameters(p); err != nil {
		return nil, err
	}
	plan := cs.derivePlan(p)

	result := &domain.ScheduleResult{
		Rows:           make([]domain.PayPeriodRow, p.TotalPayPeriods),
		PayPerPeriod:   plan.pay.Round(2),
		MaxRatePeriods: clampInt(plan.maxPeriods, 0, plan.remaining),
	}
	if plan.hasTransition {
		result.TransitionPercent = plan.transitionPercent
	}

	cs.scheduleIndividual(p, plan, result)
	result.MaxEmployerAmount = p.EmployerContributedSoFar.Add(sumUpcoming(result.Rows, p.PayPeriodsElapsed, func(r domain.PayPeriodRow) decimal.Decimal {
		return r.EmployerAmount
	}))
	scheduled := scheduleAfterTax(p, plan, result)
	result.MaxAfterTaxAmount = p.AfterTaxContributedSoFar.Add(scheduled)
	accumulate(p, result.Rows)

	final := result.Final()
	cs.Logger.Debugf("schedule: individual %s of %s, employer %s, after-tax %s",
		final.CumulativeIndividual.StringFixed(2), p.IndividualCapAmount.StringFixed(2),
		result.MaxEmployerAmount.StringFixed(2), result.MaxAfterTaxAmount.StringFixed(2))
	return result, nil
}

// scheduleIndividual fills contribution and employer columns and the
// individual cumulative, applying the cap overrides
func (cs *ContributionScheduler) scheduleIndividual(p domain.ContributionParameters, plan contributionPlan, result *domain.ScheduleResult) {
	grossPay := plan.pay.Round(2)
	capAmount := p.IndividualCapAmount
	cumulative := p.IndividualContributedSoFar
	last := p.TotalPayPeriods - 1

	for i := range result.Rows {
		row := domain.PayPeriodRow{Index: i, GrossPay: grossPay}
		switch {
		case i < p.PayPeriodsElapsed-1:
			row.Flags.AlreadyPassed = true
			result.Rows[i] = row
			continue
		case i == p.PayPeriodsElapsed-1:
			row.Flags.AlreadyPassed = true
			row.ContributionAmount = p.IndividualContributedSoFar
			row.EmployerAmount = p.EmployerContributedSoFar
			row.AfterTaxAmount = p.AfterTaxContributedSoFar
			row.CumulativeIndividual = p.IndividualContributedSoFar
			result.Rows[i] = row
			continue
		}

		percent := plan.percentFor(i-p.PayPeriodsElapsed, p)
		amount := percentAmount(percent, plan.pay)
		projected := cumulative.Add(amount)

		switch {
		case i == last && p.AutomaticallyCap && projected.LessThan(capAmount) &&
			capAmount.Sub(cumulative).LessThanOrEqual(plan.maxAmount):
			amount = capAmount.Sub(cumulative)
			percent = ceilPercent(amount, plan.pay)
			row.Flags.MaxReachedWithAutomaticCap = true
			result.MaxReachedWithAutomaticCap = true
		case projected.GreaterThan(capAmount):
			row.Flags.MaxReachedEarly = true
			result.MaxReachedEarly = true
			gap := decimal.Max(capAmount.Sub(cumulative), decimal.Zero)
			if p.AutomaticallyCap {
				amount = gap
				percent = ceilPercent(gap, plan.pay)
			} else {
				percent, amount = largestPercentWithin(gap, plan.pay)
			}
		}

		cumulative = cumulative.Add(amount)
		if i == last && cumulative.LessThan(capAmount) && !percent.Equal(p.MaxContributionPercent) {
			row.Flags.MaxNotReached = true
			result.MaxNotReached = true
		}

		row.ContributionFraction = percent.Div(hundred)
		row.ContributionAmount = amount
		row.CumulativeIndividual = cumulative
		row.EmployerAmount = employerMatch(p, plan.pay, percent, amount)
		result.Rows[i] = row
	}
}

// employerMatch is the non-elective base plus the proportional match. The
// proportional part is limited by the up-to percent and never exceeds what
// the employee contributed.
func employerMatch(p domain.ContributionParameters, pay, percent, amount decimal.Decimal) decimal.Decimal {
	base := p.EmployerMatchBasePercent.Div(hundred).Mul(pay).Round(2)
	matchedPercent := decimal.Min(p.EmployerMatchUpToPercent, percent)
	proportional := p.EmployerMatchPercent.Div(hundred).Mul(matchedPercent.Div(hundred)).Mul(pay).Round(2)
	return base.Add(decimal.Min(amount, proportional))
}

// scheduleAfterTax spends the room left under the total cap in each
// upcoming paycheck's unused headroom, earliest first
func scheduleAfterTax(p domain.ContributionParameters, plan contributionPlan, result *domain.ScheduleResult) decimal.Decimal {
	final := result.Final()
	room := p.TotalCapAmount.
		Sub(final.CumulativeIndividual).
		Sub(result.MaxEmployerAmount).
		Sub(p.AfterTaxContributedSoFar)
	if !room.IsPositive() {
		return decimal.Zero
	}

	scheduled := decimal.Zero
	for i := p.PayPeriodsElapsed; i < len(result.Rows) && room.IsPositive(); i++ {
		row := &result.Rows[i]
		headroom := p.MaxContributionPercent.Sub(row.ContributionPercent()).Floor()
		if !headroom.IsPositive() {
			continue
		}
		percent := headroom
		amount := percentAmount(percent, plan.pay)
		if amount.GreaterThan(room) {
			if p.AutomaticallyCap {
				amount = room
				percent = ceilPercent(room, plan.pay)
			} else {
				percent, amount = largestPercentWithin(room, plan.pay)
			}
		}
		row.AfterTaxFraction = percent.Div(hundred)
		row.AfterTaxAmount = amount
		room = room.Sub(amount)
		scheduled = scheduled.Add(amount)
	}
	return scheduled
}

// accumulate fills the employer and total cumulative columns. Placeholder
// rows stay zero; the pinned row (or the first upcoming row when nothing has
// elapsed) seeds from the so-far totals.
func accumulate(p domain.ContributionParameters, rows []domain.PayPeriodRow) {
	withEmployer := decimal.Zero
	total := decimal.Zero
	start := p.PayPeriodsElapsed - 1
	if start < 0 {
		start = 0
		withEmployer = p.IndividualContributedSoFar.Add(p.EmployerContributedSoFar)
		total = withEmployer.Add(p.AfterTaxContributedSoFar)
	}
	for i := start; i < len(rows); i++ {
		r := &rows[i]
		withEmployer = withEmployer.Add(r.ContributionAmount).Add(r.EmployerAmount)
		total = total.Add(r.ContributionAmount).Add(r.EmployerAmount).Add(r.AfterTaxAmount)
		r.CumulativeWithEmployer = withEmployer
		r.CumulativeTotal = total
	}
}

func sumUpcoming(rows []domain.PayPeriodRow, from int, f func(domain.PayPeriodRow) decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows[from:] {
		sum = sum.Add(f(r))
	}
	return sum
}

// percentAmount is percent of pay, in cents
func percentAmount(percent, pay decimal.Decimal) decimal.Decimal {
	return pay.Mul(percent).Div(hundred).Round(2)
}

func floorPercent(amount, pay decimal.Decimal) decimal.Decimal {
	if pay.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(hundred).Div(pay).Floor()
}

func ceilPercent(amount, pay decimal.Decimal) decimal.Decimal {
	if pay.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(hundred).Div(pay).Ceil()
}

// largestPercentWithin rounds the percent down so the cents amount stays at
// or below limit
func largestPercentWithin(limit, pay decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	percent := floorPercent(limit, pay)
	amount := percentAmount(percent, pay)
	for percent.IsPositive() && amount.GreaterThan(limit) {
		percent = percent.Sub(one)
		amount = percentAmount(percent, pay)
	}
	return percent, amount
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
