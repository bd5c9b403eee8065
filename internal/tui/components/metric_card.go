package components

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/rgehrsitz/paygo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard is one boxed schedule figure
type MetricCard struct {
	Label string
	Value string
	Note  string
	Width int
	Warn  bool
}

// NewMetricCard creates a card for a preformatted value
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 24}
}

// NewAmountCard creates a card showing a money amount
func NewAmountCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, output.FormatCurrency(amount))
}

func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithWarning flags the value, e.g. when the individual cap will not be reached
func (m *MetricCard) WithWarning(warn bool) *MetricCard {
	m.Warn = warn
	return m
}

func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) value() string {
	return tuistyles.MetricToneStyle(!m.Warn).Render(m.Value)
}

// Render draws the card inside a rounded border
func (m *MetricCard) Render() string {
	lines := []string{tuistyles.MetricLabelStyle.Render(m.Label), m.value()}
	if m.Note != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Note))
	}
	return tuistyles.BorderStyle.Width(m.Width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Inline renders "Label: value" without a border
func (m *MetricCard) Inline() string {
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + m.value()
}

// MetricGrid lays cards out left to right, columns per row
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns < 1 {
		return ""
	}
	var rows []string
	for chunk := range slices.Chunk(cards, columns) {
		rendered := make([]string, len(chunk))
		for i, c := range chunk {
			rendered[i] = c.Render()
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
