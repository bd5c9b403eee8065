// Package tuistyles holds the lipgloss palette shared by the TUI and its
// components.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#003366", Dark: "#5FAFFF"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#B35900", Dark: "#FFAF5F"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#87D787"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF5F5F"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#00695C", Dark: "#5FD7D7"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#6C6C6C"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"}
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true)

	ParameterLabelStyle = lipgloss.NewStyle().Width(30)
	ParameterValueStyle = lipgloss.NewStyle().Bold(true).Width(14).Align(lipgloss.Right)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
)

// MetricToneStyle colors a metric value by whether it signals a problem
func MetricToneStyle(ok bool) lipgloss.Style {
	if ok {
		return MetricValueStyle.Foreground(ColorSuccess)
	}
	return MetricValueStyle.Foreground(ColorAccent)
}
