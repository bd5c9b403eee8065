package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/rgehrsitz/paygo/internal/tui/components"
	"github.com/rgehrsitz/paygo/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.currentScene {
	case SceneParameters:
		content = m.renderParameters()
	case SceneSchedule:
		content = m.renderSchedule()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		tuistyles.StatusBarStyle.Render(m.help.View(m.keys)),
	))
}

// renderTitleBar renders the application title and current scene
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("PAYGO - 401(k) Contribution Planner")
	crumb := m.currentScene.String()
	if m.inputPath != "" {
		crumb = fmt.Sprintf("%s / %s", crumb, m.inputPath)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(crumb))
}

func (m Model) renderError() string {
	return tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\nPress q to quit."
}

// renderParameters renders the sliders beside a summary of the schedule
func (m Model) renderParameters() string {
	var b strings.Builder
	for _, prm := range m.parameters {
		b.WriteString(prm.slider.Render())
		b.WriteString("\n")
	}
	autoCap := "off"
	if m.params.AutomaticallyCap {
		autoCap = "on"
	}
	b.WriteString(tuistyles.ParameterLabelStyle.Render("Automatic cap") + tuistyles.ParameterValueStyle.Render(autoCap))

	sliders := tuistyles.ActiveBorderStyle.Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, sliders, m.renderSummary())
}

// renderSummary renders the schedule totals and warnings
func (m Model) renderSummary() string {
	if m.scheduleErr != nil {
		return tuistyles.BorderStyle.Render(tuistyles.ErrorStyle.Render(m.scheduleErr.Error()))
	}
	s := m.schedule
	final := s.Final()

	cards := []*components.MetricCard{
		components.NewAmountCard("Pay per period", s.PayPerPeriod),
		components.NewAmountCard("Individual total", final.CumulativeIndividual).
			WithWarning(s.MaxNotReached),
		components.NewAmountCard("Employer total", s.MaxEmployerAmount),
		components.NewAmountCard("After-tax total", s.MaxAfterTaxAmount),
		components.NewMetricCard("Periods at maximum", fmt.Sprintf("%d", s.MaxRatePeriods)).
			WithNote("then " + output.FormatPercentage(s.TransitionPercent)),
		components.NewAmountCard("Total with match", final.CumulativeTotal),
	}
	for _, c := range cards {
		c.WithWidth(24)
	}

	capUsed, _ := final.CumulativeIndividual.Float64()
	capLimit, _ := m.params.IndividualCapAmount.Float64()
	bar := components.NewProgressBar("Individual cap used", capUsed, capLimit).WithWidth(40)

	parts := []string{components.MetricGrid(cards, 2), bar.Render()}
	for _, w := range output.ScheduleWarnings(s) {
		parts = append(parts, tuistyles.WarningStyle.Width(44).Render("! "+w))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderSchedule renders the per-paycheck table
func (m Model) renderSchedule() string {
	if m.scheduleErr != nil {
		return tuistyles.BorderStyle.Render(tuistyles.ErrorStyle.Render(m.scheduleErr.Error()))
	}
	return tuistyles.BorderStyle.Render(m.table.View())
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	text := tuistyles.InfoStyle.Render("Adjust a parameter and the whole schedule is rebuilt.") + "\n\n" + h.View(m.keys)
	return tuistyles.BorderStyle.Render(text)
}
