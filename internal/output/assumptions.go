package output

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// DefaultNotes lists the modeling assumptions rendered in detailed outputs
func DefaultNotes(meta domain.TableMetadata) []string {
	year := "the configured year"
	if meta.TaxYear != 0 {
		year = fmt.Sprintf("%d", meta.TaxYear)
	}
	return []string{
		fmt.Sprintf("Withholding tables: %s (annual percentage method, W-4 Step 2 checked)", year),
		"Pre-tax 401(k) deferrals reduce federal and state taxable wages only",
		"Social Security and Medicare are computed on full salary",
		"Per-paycheck amounts are annual amounts divided by pay periods, rounded to cents",
		"States without withholding data are shown as zero and flagged",
	}
}
