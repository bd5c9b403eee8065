package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// ConsoleFormatter renders a plain-text report for the terminal
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	title := strings.ToUpper(report.Title())
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	if report.Paycheck != nil {
		writePaycheck(&buf, report.Paycheck)
	}
	if report.Schedule != nil {
		writeSchedule(&buf, report.Schedule)
	}

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, n := range report.notes() {
		fmt.Fprintf(&buf, "• %s\n", n)
	}
	return buf.Bytes(), nil
}

func writePaycheck(buf *bytes.Buffer, b *domain.PaycheckBreakdown) {
	fmt.Fprintln(buf, "PAYCHECK BREAKDOWN")
	fmt.Fprintln(buf, strings.Repeat("-", 50))
	fmt.Fprintf(buf, "Filing Status: %s\n", b.FilingStatus.Label())
	state := b.State
	if b.StateUndefined {
		state += " (no withholding data)"
	}
	fmt.Fprintf(buf, "State:         %s\n", state)
	fmt.Fprintf(buf, "Pay Periods:   %d\n", b.PayPeriods)
	fmt.Fprintln(buf)

	lines := []struct {
		label          string
		period, annual string
	}{
		{"Gross Pay", FormatCurrency(b.GrossPay), FormatCurrency(b.Annual.GrossIncome)},
		{"Pre-tax 401(k)", FormatCurrency(b.PreTaxDeduction), FormatCurrency(b.Annual.PreTax)},
		{"Federal Withholding", FormatCurrency(b.FederalWithholding), FormatCurrency(b.Annual.Federal)},
		{"Social Security", FormatCurrency(b.SocialSecurity), FormatCurrency(b.Annual.SocialSecurity)},
		{"Medicare", FormatCurrency(b.Medicare), FormatCurrency(b.Annual.Medicare)},
		{"State Withholding", FormatCurrency(b.StateWithholding), FormatCurrency(b.Annual.State)},
		{"After-tax 401(k)", FormatCurrency(b.AfterTaxDeduction), FormatCurrency(b.Annual.AfterTax)},
		{"NET PAY", FormatCurrency(b.NetPay), FormatCurrency(b.Annual.Net)},
	}
	fmt.Fprintf(buf, "  %-22s %14s %16s\n", "", "Per Paycheck", "Annual")
	for _, l := range lines {
		fmt.Fprintf(buf, "  %-22s %14s %16s\n", l.label, l.period, l.annual)
	}
	fmt.Fprintf(buf, "  %-22s %14s %16s\n", "Taxable Income", "", FormatCurrency(b.Annual.TaxableIncome))
	fmt.Fprintln(buf)
}

func writeSchedule(buf *bytes.Buffer, s *domain.ScheduleResult) {
	fmt.Fprintln(buf, "401(K) CONTRIBUTION SCHEDULE")
	fmt.Fprintln(buf, strings.Repeat("-", 50))
	fmt.Fprintf(buf, "Pay per period: %s   Max-rate periods: %d   Transition: %s\n",
		FormatCurrency(s.PayPerPeriod), s.MaxRatePeriods, FormatPercentage(s.TransitionPercent))
	fmt.Fprintln(buf)

	format := "%-6s %11s %6s %11s %12s %10s %12s %6s %10s %12s  %s\n"
	fmt.Fprintf(buf, format, "Period", "Gross", "Pct", "Contrib", "Cumulative", "Employer", "w/ Employer", "AT %", "After-tax", "Total", "")
	for _, r := range s.Rows {
		fmt.Fprintf(buf, format,
			r.Label(),
			FormatCurrency(r.GrossPay),
			FormatPercentage(r.ContributionPercent()),
			FormatCurrency(r.ContributionAmount),
			FormatCurrency(r.CumulativeIndividual),
			FormatCurrency(r.EmployerAmount),
			FormatCurrency(r.CumulativeWithEmployer),
			FormatRate(r.AfterTaxFraction),
			FormatCurrency(r.AfterTaxAmount),
			FormatCurrency(r.CumulativeTotal),
			RowMarkers(r.Flags),
		)
	}
	fmt.Fprintln(buf)

	final := s.Final()
	fmt.Fprintf(buf, "Individual total:  %s\n", FormatCurrency(final.CumulativeIndividual))
	fmt.Fprintf(buf, "Employer total:    %s\n", FormatCurrency(s.MaxEmployerAmount))
	fmt.Fprintf(buf, "After-tax total:   %s\n", FormatCurrency(s.MaxAfterTaxAmount))
	fmt.Fprintf(buf, "Combined total:    %s\n", FormatCurrency(final.CumulativeTotal))
	for _, w := range ScheduleWarnings(s) {
		fmt.Fprintf(buf, "! %s\n", w)
	}
	fmt.Fprintln(buf)
}
