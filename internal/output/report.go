package output

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report is everything a formatter can render. Paycheck and Schedule are
// optional; formatters skip the sections that are nil.
type Report struct {
	Input    *domain.PaycheckInput     `json:"input,omitempty"`
	Tables   domain.TableMetadata      `json:"tables"`
	Paycheck *domain.PaycheckBreakdown `json:"paycheck,omitempty"`
	Schedule *domain.ScheduleResult    `json:"schedule,omitempty"`
	Notes    []string                  `json:"notes,omitempty"`
}

// Title names the report after the input, if it has a name
func (r *Report) Title() string {
	if r.Input != nil && r.Input.Name != "" {
		return "Paycheck Plan: " + r.Input.Name
	}
	return "Paycheck Plan"
}

// notes returns r.Notes, or the defaults when none were given
func (r *Report) notes() []string {
	if len(r.Notes) > 0 {
		return r.Notes
	}
	return DefaultNotes(r.Tables)
}

var (
	hundred = decimal.NewFromInt(100)
	printer = message.NewPrinter(language.AmericanEnglish)
)

// FormatCurrency formats a decimal as US dollars with digit grouping
func FormatCurrency(amount decimal.Decimal) string {
	r := amount.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	whole := r.Truncate(0)
	cents := r.Sub(whole).Mul(hundred).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, printer.Sprintf("%d", whole.IntPart()), cents)
}

// FormatPercentage formats a whole-number percent
func FormatPercentage(percent decimal.Decimal) string {
	return percent.String() + "%"
}

// FormatRate formats a fractional rate (0.0525) as a percent
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(hundred))
}

// RowMarkers is the short status text shown next to a schedule row
func RowMarkers(f domain.RowFlags) string {
	switch {
	case f.AlreadyPassed:
		return "passed"
	case f.MaxReachedWithAutomaticCap:
		return "auto-cap"
	case f.MaxReachedEarly:
		return "cap reached"
	case f.MaxNotReached:
		return "cap not reached"
	}
	return ""
}

// ScheduleWarnings explains the schedule-level flags
func ScheduleWarnings(s *domain.ScheduleResult) []string {
	if s == nil {
		return nil
	}
	var out []string
	if s.MaxReachedEarly {
		out = append(out, "The individual cap is reached before the last pay period; later paychecks contribute less and may lose employer match.")
	}
	if s.MaxNotReached {
		out = append(out, "The individual cap is not reached this year; raise the maximum percent or enable automatic capping.")
	}
	if s.MaxReachedWithAutomaticCap {
		out = append(out, "The last pay period was adjusted to land exactly on the individual cap.")
	}
	return out
}
