package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plans
func (tf *TableFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder

	sb.WriteString("401(K) PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BasePlanName))
	if compSet.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input:     %s\n", compSet.InputPath))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Plan",
		6, "Next",
		8, "At Max",
		numWidth, "Individual",
		numWidth, "Employer",
		numWidth, "After-tax",
		numWidth, "Total"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:", alt.PlanName))
			if alt.Description != "" {
				sb.WriteString(" " + alt.Description)
			}
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf("  Individual:  %s\n", tf.formatDelta(alt.IndividualDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Employer:    %s\n", tf.formatDelta(alt.EmployerDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Total:       %s\n", tf.formatDelta(alt.CombinedDiffFromBase)))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// formatRow formats a single plan row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.PlanName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*d %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		6, output.FormatPercentage(result.NextPercent),
		8, result.MaxRatePeriods,
		numWidth, output.FormatCurrency(result.IndividualTotal),
		numWidth, output.FormatCurrency(result.EmployerTotal),
		numWidth, output.FormatCurrency(result.AfterTaxTotal),
		numWidth, output.FormatCurrency(result.CombinedTotal))
}

// formatDelta renders a signed currency difference, "no change" for zero
func (tf *TableFormatter) formatDelta(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+" + output.FormatCurrency(delta)
	case delta.IsNegative():
		return output.FormatCurrency(delta)
	}
	return "no change"
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each plan
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BasePlanName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.CombinedDiffFromBase.IsZero() {
			change = tf.formatDelta(alt.CombinedDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.PlanName, change))
	}

	return sb.String()
}
