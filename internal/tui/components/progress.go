package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paygo/internal/tui/tuistyles"
)

// ProgressBar shows how much of a limit a running total has used
type ProgressBar struct {
	Current float64
	Limit   float64
	Width   int
	Label   string
}

// NewProgressBar creates a new progress bar
func NewProgressBar(label string, current, limit float64) *ProgressBar {
	return &ProgressBar{
		Current: current,
		Limit:   limit,
		Width:   30,
		Label:   label,
	}
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Percentage returns the share of the limit used, 0 to 100
func (p *ProgressBar) Percentage() float64 {
	if p.Limit <= 0 {
		return 0
	}
	pct := p.Current / p.Limit * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// IsComplete returns true once the limit is reached
func (p *ProgressBar) IsComplete() bool {
	return p.Limit > 0 && p.Current >= p.Limit
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		content.WriteString(tuistyles.MetricLabelStyle.Render(p.Label))
		content.WriteString("\n")
	}

	pct := p.Percentage()
	filled := int(float64(p.Width) * pct / 100)
	if filled > p.Width {
		filled = p.Width
	}

	fill := lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)
	if p.IsComplete() {
		fill = fill.Foreground(tuistyles.ColorSuccess)
	}

	content.WriteString("[")
	content.WriteString(fill.Render(strings.Repeat("█", filled)))
	content.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("░", p.Width-filled)))
	content.WriteString("] ")
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).
		Render(fmt.Sprintf("%.1f%%", pct)))

	return content.String()
}
