package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes the contribution schedule one row per pay period, or
// the paycheck lines when the report has no schedule
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var records [][]string
	if report.Schedule != nil {
		records = scheduleRecords(report)
	} else {
		records = paycheckRecords(report)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scheduleRecords(report *Report) [][]string {
	records := [][]string{{
		"Period", "GrossPay", "ContributionPercent", "ContributionAmount", "CumulativeIndividual",
		"EmployerAmount", "CumulativeWithEmployer", "AfterTaxPercent", "AfterTaxAmount", "CumulativeTotal",
		"AlreadyPassed", "MaxReachedEarly", "MaxNotReached", "MaxReachedWithAutomaticCap",
	}}
	for _, r := range report.Schedule.Rows {
		records = append(records, []string{
			r.Label(),
			r.GrossPay.StringFixed(2),
			r.ContributionPercent().String(),
			r.ContributionAmount.StringFixed(2),
			r.CumulativeIndividual.StringFixed(2),
			r.EmployerAmount.StringFixed(2),
			r.CumulativeWithEmployer.StringFixed(2),
			r.AfterTaxFraction.Mul(hundred).String(),
			r.AfterTaxAmount.StringFixed(2),
			r.CumulativeTotal.StringFixed(2),
			strconv.FormatBool(r.Flags.AlreadyPassed),
			strconv.FormatBool(r.Flags.MaxReachedEarly),
			strconv.FormatBool(r.Flags.MaxNotReached),
			strconv.FormatBool(r.Flags.MaxReachedWithAutomaticCap),
		})
	}
	return records
}

func paycheckRecords(report *Report) [][]string {
	records := [][]string{{"Line", "PerPaycheck", "Annual"}}
	b := report.Paycheck
	if b == nil {
		return records
	}
	return append(records,
		[]string{"GrossPay", b.GrossPay.StringFixed(2), b.Annual.GrossIncome.StringFixed(2)},
		[]string{"PreTax", b.PreTaxDeduction.StringFixed(2), b.Annual.PreTax.StringFixed(2)},
		[]string{"Federal", b.FederalWithholding.StringFixed(2), b.Annual.Federal.StringFixed(2)},
		[]string{"SocialSecurity", b.SocialSecurity.StringFixed(2), b.Annual.SocialSecurity.StringFixed(2)},
		[]string{"Medicare", b.Medicare.StringFixed(2), b.Annual.Medicare.StringFixed(2)},
		[]string{"State", b.StateWithholding.StringFixed(2), b.Annual.State.StringFixed(2)},
		[]string{"AfterTax", b.AfterTaxDeduction.StringFixed(2), b.Annual.AfterTax.StringFixed(2)},
		[]string{"NetPay", b.NetPay.StringFixed(2), b.Annual.Net.StringFixed(2)},
	)
}
