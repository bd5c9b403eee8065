package calculation

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// PaycheckCalculator estimates the withholding on a single paycheck by
// annualising, evaluating each table, and dividing back by the pay periods
type PaycheckCalculator struct {
	Federal        *FederalWithholdingCalculator
	SocialSecurity *PayrollTaxCalculator
	Medicare       *PayrollTaxCalculator
	State          *StateWithholdingCalculator
	Scheduler      *ContributionScheduler
	Logger         Logger
}

// NewPaycheckCalculator wires the individual calculators together
func NewPaycheckCalculator(federal *FederalWithholdingCalculator, ss, medicare *PayrollTaxCalculator, state *StateWithholdingCalculator) *PaycheckCalculator {
	return &PaycheckCalculator{
		Federal:        federal,
		SocialSecurity: ss,
		Medicare:       medicare,
		State:          state,
		Scheduler:      NewContributionScheduler(),
		Logger:         NopLogger{},
	}
}

// SetLogger installs l on the calculator and its state and scheduler parts
func (pc *PaycheckCalculator) SetLogger(l Logger) {
	pc.Logger = loggerOrNop(l)
	if pc.State != nil {
		pc.State.SetLogger(pc.Logger)
	}
	if pc.Scheduler != nil {
		pc.Scheduler.SetLogger(pc.Logger)
	}
}

// ElectedPercent is the pre-tax percent for the next paycheck: the explicit
// election when one is given (0 included), otherwise the schedule's first
// upcoming period
func (pc *PaycheckCalculator) ElectedPercent(in domain.PaycheckInput) (decimal.Decimal, error) {
	if in.ContributionPercent != nil {
		return *in.ContributionPercent, nil
	}
	schedule, err := pc.Scheduler.Generate(in.Contribution)
	if err != nil {
		return decimal.Zero, fmt.Errorf("contribution schedule: %w", err)
	}
	return schedule.Rows[in.Contribution.PayPeriodsElapsed].ContributionPercent(), nil
}

// Compute returns the per-paycheck breakdown for in
func (pc *PaycheckCalculator) Compute(in domain.PaycheckInput) (*domain.PaycheckBreakdown, error) {
	periods := in.Contribution.TotalPayPeriods
	if periods <= 0 {
		return nil, fmt.Errorf("%w: total pay periods must be positive, got %d", ErrInvalidSchedule, periods)
	}
	percent, err := pc.ElectedPercent(in)
	if err != nil {
		return nil, err
	}

	salary := in.Contribution.Salary
	n := decimal.NewFromInt(int64(periods))
	pay := salary.Div(n)

	preTax := percentAmount(percent, pay)
	afterTax := percentAmount(in.AfterTaxPercent, pay)
	annualPreTax := preTax.Mul(n)
	taxable := decimal.Max(salary.Sub(annualPreTax), decimal.Zero)

	federal, err := pc.Federal.Compute(taxable, in.FilingStatus)
	if err != nil {
		return nil, fmt.Errorf("federal withholding: %w", err)
	}
	// 401(k) deferrals remain FICA wages
	ss, err := pc.SocialSecurity.Compute(salary, in.FilingStatus)
	if err != nil {
		return nil, err
	}
	medicare, err := pc.Medicare.Compute(salary, in.FilingStatus)
	if err != nil {
		return nil, err
	}
	// no state configured is not an unsupported state
	state := StateResult{Amount: decimal.Zero, TaxableIncome: decimal.Zero}
	if in.State != "" {
		state = pc.State.Withholding(in.State, taxable, in.FilingStatus)
	}

	b := &domain.PaycheckBreakdown{
		FilingStatus:       in.FilingStatus,
		State:              in.State,
		PayPeriods:         periods,
		GrossPay:           pay.Round(2),
		PreTaxDeduction:    preTax,
		FederalWithholding: federal.Div(n).Round(2),
		SocialSecurity:     ss.Div(n).Round(2),
		Medicare:           medicare.Div(n).Round(2),
		StateWithholding:   state.Amount.Div(n).Round(2),
		AfterTaxDeduction:  afterTax,
		StateUndefined:     state.Undefined,
	}
	b.NetPay = b.GrossPay.Sub(b.PreTaxDeduction).Sub(b.TotalWithholding()).Sub(b.AfterTaxDeduction)

	b.Annual = domain.AnnualWithholding{
		GrossIncome:    salary,
		TaxableIncome:  taxable,
		Federal:        federal.Round(2),
		SocialSecurity: ss.Round(2),
		Medicare:       medicare.Round(2),
		State:          state.Amount.Round(2),
		PreTax:         annualPreTax,
		AfterTax:       afterTax.Mul(n),
	}
	b.Annual.Net = salary.Sub(b.Annual.PreTax).Sub(b.Annual.AfterTax).
		Sub(b.Annual.Federal).Sub(b.Annual.SocialSecurity).Sub(b.Annual.Medicare).Sub(b.Annual.State)

	pc.Logger.Debugf("paycheck %s/%s: gross %s, taxable %s, federal %s, state %s",
		in.FilingStatus, in.State, b.GrossPay.StringFixed(2), taxable.StringFixed(2),
		b.FederalWithholding.StringFixed(2), b.StateWithholding.StringFixed(2))
	return b, nil
}
