package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Plan",
		"Type",
		"Next Percent",
		"Max Rate Periods",
		"Individual Total",
		"Employer Total",
		"After-tax Total",
		"Combined Total",
		"Unused Cap",
		"Cap Reached Early",
		"Individual Diff from Base",
		"Employer Diff from Base",
		"Combined Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, planType string) []string {
	return []string{
		result.PlanName,
		planType,
		result.NextPercent.String(),
		strconv.Itoa(result.MaxRatePeriods),
		result.IndividualTotal.StringFixed(2),
		result.EmployerTotal.StringFixed(2),
		result.AfterTaxTotal.StringFixed(2),
		result.CombinedTotal.StringFixed(2),
		result.UnusedCap.StringFixed(2),
		strconv.FormatBool(result.CapReachedEarly),
		result.IndividualDiffFromBase.StringFixed(2),
		result.EmployerDiffFromBase.StringFixed(2),
		result.CombinedDiffFromBase.StringFixed(2),
	}
}
