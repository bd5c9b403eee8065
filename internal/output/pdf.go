package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfPageWidth    = 297.0
	pdfMarginLeft   = 12.0
	pdfMarginRight  = 12.0
	pdfMarginTop    = 12.0
	pdfMarginBottom = 15.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders the report as a landscape A4 document
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *Report) ([]byte, error) {
	doc := &pdfReport{pdf: fpdf.New("L", "mm", "A4", ""), report: report}
	doc.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	doc.pdf.SetAutoPageBreak(true, pdfMarginBottom)
	doc.pdf.SetTitle(report.Title(), false)

	doc.pdf.AddPage()
	doc.drawTitle()
	if report.Paycheck != nil {
		doc.drawPaycheck()
	}
	if report.Schedule != nil {
		doc.drawSchedule()
	}
	doc.drawNotes()

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfReport struct {
	pdf    *fpdf.Fpdf
	report *Report
}

func (r *pdfReport) drawTitle() {
	r.pdf.SetFont("Arial", "B", 18)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 10, r.report.Title(), "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.CellFormat(pdfContentWidth, 5, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "L", false, 0, "")
	r.pdf.Ln(4)
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 8, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(pdfMarginLeft, r.pdf.GetY(), pdfMarginLeft+pdfContentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 8)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		r.pdf.CellFormat(widths[i], 6, h, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, bold, muted bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)
	if muted {
		r.pdf.SetTextColor(150, 150, 150)
	}
	style := ""
	if bold {
		style = "B"
		r.pdf.SetFillColor(240, 240, 240)
	}
	r.pdf.SetFont("Arial", style, 8)
	for i, c := range cells {
		align := "R"
		if i == 0 {
			align = "L"
		}
		r.pdf.CellFormat(widths[i], 5, c, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawPaycheck() {
	b := r.report.Paycheck
	r.drawSectionHeader("Paycheck Breakdown")

	state := b.State
	if b.StateUndefined {
		state += " (no withholding data)"
	}
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("%s, %s, %d pay periods", b.FilingStatus.Label(), state, b.PayPeriods), "", 1, "L", false, 0, "")

	widths := []float64{60, 40, 40}
	r.drawTableHeader([]string{"", "Per Paycheck", "Annual"}, widths)
	r.drawTableRow([]string{"Gross Pay", FormatCurrency(b.GrossPay), FormatCurrency(b.Annual.GrossIncome)}, widths, false, false)
	r.drawTableRow([]string{"Pre-tax 401(k)", FormatCurrency(b.PreTaxDeduction), FormatCurrency(b.Annual.PreTax)}, widths, false, false)
	r.drawTableRow([]string{"Federal Withholding", FormatCurrency(b.FederalWithholding), FormatCurrency(b.Annual.Federal)}, widths, false, false)
	r.drawTableRow([]string{"Social Security", FormatCurrency(b.SocialSecurity), FormatCurrency(b.Annual.SocialSecurity)}, widths, false, false)
	r.drawTableRow([]string{"Medicare", FormatCurrency(b.Medicare), FormatCurrency(b.Annual.Medicare)}, widths, false, false)
	r.drawTableRow([]string{"State Withholding", FormatCurrency(b.StateWithholding), FormatCurrency(b.Annual.State)}, widths, false, false)
	r.drawTableRow([]string{"After-tax 401(k)", FormatCurrency(b.AfterTaxDeduction), FormatCurrency(b.Annual.AfterTax)}, widths, false, false)
	r.drawTableRow([]string{"Net Pay", FormatCurrency(b.NetPay), FormatCurrency(b.Annual.Net)}, widths, true, false)
	r.pdf.Ln(6)
}

func (r *pdfReport) drawSchedule() {
	s := r.report.Schedule
	r.drawSectionHeader("401(k) Contribution Schedule")

	headers := []string{"Period", "Gross", "Pct", "Contribution", "Cumulative", "Employer", "With Employer", "AT %", "After-tax", "Total", "Status"}
	widths := []float64{14, 26, 14, 27, 28, 24, 28, 14, 25, 28, 45}
	r.drawTableHeader(headers, widths)
	for _, row := range s.Rows {
		if r.pdf.GetY() > 190 {
			r.pdf.AddPage()
			r.drawTableHeader(headers, widths)
		}
		r.drawTableRow([]string{
			row.Label(),
			FormatCurrency(row.GrossPay),
			FormatPercentage(row.ContributionPercent()),
			FormatCurrency(row.ContributionAmount),
			FormatCurrency(row.CumulativeIndividual),
			FormatCurrency(row.EmployerAmount),
			FormatCurrency(row.CumulativeWithEmployer),
			FormatRate(row.AfterTaxFraction),
			FormatCurrency(row.AfterTaxAmount),
			FormatCurrency(row.CumulativeTotal),
			RowMarkers(row.Flags),
		}, widths, false, row.Flags.AlreadyPassed)
	}

	r.pdf.Ln(3)
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(pdfContentWidth, 5, fmt.Sprintf("Employer total %s; after-tax total %s; combined %s",
		FormatCurrency(s.MaxEmployerAmount), FormatCurrency(s.MaxAfterTaxAmount), FormatCurrency(s.Final().CumulativeTotal)), "", 1, "L", false, 0, "")
	r.pdf.SetTextColor(161, 92, 0)
	for _, w := range ScheduleWarnings(s) {
		r.pdf.MultiCell(pdfContentWidth, 5, w, "", "L", false)
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) drawNotes() {
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 6, "Key Assumptions", "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(80, 80, 80)
	for _, n := range r.report.notes() {
		r.pdf.MultiCell(pdfContentWidth, 4.5, "- "+n, "", "L", false)
	}
}
