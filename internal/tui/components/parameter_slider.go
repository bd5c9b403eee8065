package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paygo/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable numeric parameter with a slider bar
type ParameterSlider struct {
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Width       int
	IsFocused   bool
	Description string

	// FormatValue renders the value; defaults to two decimals
	FormatValue func(float64) string
}

// NewParameterSlider creates a new parameter slider
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	return &ParameterSlider{
		Label: label,
		Value: value,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 20,
	}
}

// WithFormatter sets the value renderer
func (p *ParameterSlider) WithFormatter(f func(float64) string) *ParameterSlider {
	p.FormatValue = f
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment increases the value by step, stopping at Max
func (p *ParameterSlider) Increment() {
	p.SetValue(p.Value + p.Step)
}

// Decrement decreases the value by step, stopping at Min
func (p *ParameterSlider) Decrement() {
	p.SetValue(p.Value - p.Step)
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value float64) {
	p.Value = math.Max(p.Min, math.Min(p.Max, value))
}

// SetMax changes the upper bound and clamps the value to it
func (p *ParameterSlider) SetMax(max float64) {
	p.Max = max
	p.SetValue(p.Value)
}

// Percentage returns the value as a fraction of the range
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// ValueString renders the current value
func (p *ParameterSlider) ValueString() string {
	if p.FormatValue != nil {
		return p.FormatValue(p.Value)
	}
	return fmt.Sprintf("%.2f", p.Value)
}

// Render returns a single line: label, value and slider bar. The focused
// slider also shows its description.
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	marker := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		marker = tuistyles.SliderThumbStyle.Render("▸ ")
	}

	line := marker + labelStyle.Render(p.Label) + valueStyle.Render(p.ValueString()) + " " + p.renderSliderBar()
	if p.IsFocused && p.Description != "" {
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true).
			PaddingLeft(4)
		line += "\n" + descStyle.Render(p.Description)
	}
	return line
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}

	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.Width; i++ {
		switch {
		case i == filled || (i == p.Width-1 && filled == p.Width):
			bar.WriteString(thumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(thumbStyle.Render("━"))
		default:
			bar.WriteString(trackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}
