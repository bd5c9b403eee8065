package compare

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single plan's schedule reduced to its key metrics
type ComparisonResult struct {
	PlanName    string                        `json:"planName"`
	Description string                        `json:"description,omitempty"`
	Parameters  domain.ContributionParameters `json:"parameters"`

	// Key Metrics
	NextPercent     decimal.Decimal `json:"nextPercent"`
	MaxRatePeriods  int             `json:"maxRatePeriods"`
	IndividualTotal decimal.Decimal `json:"individualTotal"`
	EmployerTotal   decimal.Decimal `json:"employerTotal"`
	AfterTaxTotal   decimal.Decimal `json:"afterTaxTotal"`
	CombinedTotal   decimal.Decimal `json:"combinedTotal"`
	UnusedCap       decimal.Decimal `json:"unusedCap"`
	CapReachedEarly bool            `json:"capReachedEarly"`

	// Comparison to Base
	IndividualDiffFromBase decimal.Decimal `json:"individualDiffFromBase"`
	EmployerDiffFromBase   decimal.Decimal `json:"employerDiffFromBase"`
	CombinedDiffFromBase   decimal.Decimal `json:"combinedDiffFromBase"`
}

// CapReached reports whether the plan contributes the full individual cap
func (r ComparisonResult) CapReached() bool {
	return !r.UnusedCap.IsPositive()
}

// ComparisonSet represents a base plan and its alternatives
type ComparisonSet struct {
	BasePlanName       string             `json:"basePlanName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath,omitempty"`
}

// MetricsCalculator extracts key metrics from schedules
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a generated schedule
func (mc *MetricsCalculator) CalculateMetrics(name string, p domain.ContributionParameters, schedule *domain.ScheduleResult) ComparisonResult {
	final := schedule.Final()
	result := ComparisonResult{
		PlanName:        name,
		Parameters:      p,
		MaxRatePeriods:  schedule.MaxRatePeriods,
		IndividualTotal: final.CumulativeIndividual,
		EmployerTotal:   schedule.MaxEmployerAmount,
		AfterTaxTotal:   schedule.MaxAfterTaxAmount,
		CombinedTotal:   final.CumulativeTotal,
		UnusedCap:       decimal.Max(p.IndividualCapAmount.Sub(final.CumulativeIndividual), decimal.Zero),
		CapReachedEarly: mc.reachedEarly(schedule),
	}
	if p.PayPeriodsElapsed < len(schedule.Rows) {
		result.NextPercent = schedule.Rows[p.PayPeriodsElapsed].ContributionPercent()
	}
	return result
}

// reachedEarly reports a cap hit before the last paycheck; an overshoot
// trimmed on the last paycheck itself still contributes every period
func (mc *MetricsCalculator) reachedEarly(schedule *domain.ScheduleResult) bool {
	for _, r := range schedule.Rows[:len(schedule.Rows)-1] {
		if r.Flags.MaxReachedEarly {
			return true
		}
	}
	return false
}

// CalculateComparison computes comparison metrics between a plan and a base
func (mc *MetricsCalculator) CalculateComparison(plan, base ComparisonResult) ComparisonResult {
	plan.IndividualDiffFromBase = plan.IndividualTotal.Sub(base.IndividualTotal)
	plan.EmployerDiffFromBase = plan.EmployerTotal.Sub(base.EmployerTotal)
	plan.CombinedDiffFromBase = plan.CombinedTotal.Sub(base.CombinedTotal)
	return plan
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Find the plan capturing the most employer money
	bestMatch := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.EmployerTotal.GreaterThan(bestMatch.EmployerTotal) {
			bestMatch = alt
		}
	}
	if bestMatch != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Most Employer Match: %s captures $%s more employer money than the base plan",
				bestMatch.PlanName, bestMatch.EmployerTotal.Sub(base.EmployerTotal).StringFixed(2)))
	}

	// Find the largest combined contribution
	bestTotal := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.CombinedTotal.GreaterThan(bestTotal.CombinedTotal) {
			bestTotal = alt
		}
	}
	if bestTotal != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Largest Total: %s saves $%s more across all sources",
				bestTotal.PlanName, bestTotal.CombinedTotal.Sub(base.CombinedTotal).StringFixed(2)))
	}

	for _, r := range append([]ComparisonResult{*base}, compSet.AlternativeResults...) {
		switch {
		case !r.CapReached():
			recommendations = append(recommendations,
				fmt.Sprintf("Unused Cap: %s leaves $%s of the individual cap unused", r.PlanName, r.UnusedCap.StringFixed(2)))
		case r.CapReachedEarly:
			recommendations = append(recommendations,
				fmt.Sprintf("Early Cap: %s stops contributing before the last paycheck", r.PlanName))
		}
	}

	return recommendations
}
