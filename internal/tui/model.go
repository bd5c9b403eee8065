package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/rgehrsitz/paygo/internal/tui/components"
)

// parameter binds a slider to one field of the contribution parameters
type parameter struct {
	slider *components.ParameterSlider
	get    func(p *domain.ContributionParameters) float64
	set    func(p *domain.ContributionParameters, v float64)
}

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	inputPath string
	params    domain.ContributionParameters

	scheduler   *calculation.ContributionScheduler
	schedule    *domain.ScheduleResult
	scheduleErr error

	parameters []*parameter
	focused    int

	table table.Model
	keys  keyMap
	help  help.Model

	// err is a load failure; the model cannot continue without parameters
	err error
}

// DefaultParameters is a biweekly plan used when no input file is given
func DefaultParameters() domain.ContributionParameters {
	return domain.ContributionParameters{
		Salary:                   decimal.NewFromInt(100000),
		TotalPayPeriods:          26,
		IndividualCapAmount:      decimal.NewFromInt(19500),
		TotalCapAmount:           decimal.NewFromInt(58000),
		MinContributionPercent:   decimal.NewFromInt(6),
		MaxContributionPercent:   decimal.NewFromInt(50),
		EmployerMatchPercent:     decimal.NewFromInt(50),
		EmployerMatchUpToPercent: decimal.NewFromInt(6),
	}
}

// NewModel creates a model editing params. When inputPath is set, Init loads
// the parameters from that file instead.
func NewModel(inputPath string, params domain.ContributionParameters) Model {
	m := Model{
		currentScene: SceneParameters,
		inputPath:    inputPath,
		scheduler:    calculation.NewContributionScheduler(),
		keys:         newKeyMap(),
		help:         help.New(),
		table: table.New(
			table.WithColumns(scheduleColumns()),
			table.WithFocused(true),
			table.WithHeight(15),
		),
		width:  100,
		height: 30,
	}
	m.parameters = newParameters()
	m.setParams(params)
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.inputPath == "" {
		return nil
	}
	return loadInputCmd(m.inputPath)
}

// loadInputCmd returns a command that loads the input file
func loadInputCmd(path string) tea.Cmd {
	return func() tea.Msg {
		input, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{Input: input}
	}
}

// setParams replaces every parameter and rebuilds the schedule
func (m *Model) setParams(p domain.ContributionParameters) {
	m.params = p
	for _, prm := range m.parameters {
		prm.slider.SetValue(prm.get(&m.params))
	}
	m.syncBounds()
	m.regenerate()
}

// adjust moves the focused parameter one step and rebuilds the schedule
func (m *Model) adjust(up bool) {
	prm := m.parameters[m.focused]
	if up {
		prm.slider.Increment()
	} else {
		prm.slider.Decrement()
	}
	prm.set(&m.params, prm.slider.Value)
	m.syncBounds()
	m.regenerate()
}

// syncBounds keeps the elapsed-periods slider below the pay period count
func (m *Model) syncBounds() {
	elapsed := m.parameters[paramElapsed]
	elapsed.slider.SetMax(float64(m.params.TotalPayPeriods - 1))
	elapsed.set(&m.params, elapsed.slider.Value)
}

// regenerate rebuilds the whole schedule from the current parameters
func (m *Model) regenerate() {
	m.schedule, m.scheduleErr = m.scheduler.Generate(m.params)
	m.table.SetRows(scheduleRows(m.schedule))
}

func (m *Model) setFocus(i int) {
	m.parameters[m.focused].slider.IsFocused = false
	m.focused = (i + len(m.parameters)) % len(m.parameters)
	m.parameters[m.focused].slider.IsFocused = true
}

// Params returns the parameters currently being edited
func (m Model) Params() domain.ContributionParameters { return m.params }

// Schedule returns the most recent schedule, or nil if the parameters are
// inconsistent
func (m Model) Schedule() *domain.ScheduleResult { return m.schedule }

// indexes into newParameters
const (
	paramSalary = iota
	paramPeriods
	paramElapsed
)

func newParameters() []*parameter {
	params := []*parameter{
		countParam("Annual salary", 0, 1000000, 1000, currency, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.Salary }),
		intParam("Pay periods per year", 1, 52, func(p *domain.ContributionParameters) *int { return &p.TotalPayPeriods }),
		intParam("Pay periods elapsed", 0, 51, func(p *domain.ContributionParameters) *int { return &p.PayPeriodsElapsed }),
		countParam("Contributed so far", 0, 100000, 100, currency, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.IndividualContributedSoFar }),
		countParam("Employer so far", 0, 100000, 100, currency, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.EmployerContributedSoFar }),
		countParam("After-tax so far", 0, 100000, 100, currency, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.AfterTaxContributedSoFar }),
		countParam("Individual cap", 0, 100000, 500, currency, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.IndividualCapAmount }),
		countParam("Total cap", 0, 200000, 500, currency, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.TotalCapAmount }),
		countParam("Minimum contribution", 0, 100, 1, percent, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.MinContributionPercent }),
		countParam("Maximum contribution", 0, 100, 1, percent, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.MaxContributionPercent }),
		countParam("Employer base", 0, 100, 0.5, percent, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.EmployerMatchBasePercent }),
		countParam("Employer match", 0, 200, 5, percent, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.EmployerMatchPercent }),
		countParam("Match up to", 0, 100, 0.5, percent, func(p *domain.ContributionParameters) *decimal.Decimal { return &p.EmployerMatchUpToPercent }),
	}
	params[paramSalary].slider.WithDescription("Annual gross pay, paid evenly across pay periods")
	params[paramPeriods].slider.WithDescription("26 for biweekly, 24 for semimonthly, 12 for monthly")
	params[paramElapsed].slider.WithDescription("Paychecks already issued this year")
	params[paramSalary].slider.IsFocused = true
	return params
}

func countParam(label string, min, max, step float64, format func(float64) string, field func(*domain.ContributionParameters) *decimal.Decimal) *parameter {
	return &parameter{
		slider: components.NewParameterSlider(label, 0, min, max, step).WithFormatter(format),
		get:    func(p *domain.ContributionParameters) float64 { return field(p).InexactFloat64() },
		set:    func(p *domain.ContributionParameters, v float64) { *field(p) = decimal.NewFromFloat(v) },
	}
}

func intParam(label string, min, max float64, field func(*domain.ContributionParameters) *int) *parameter {
	return &parameter{
		slider: components.NewParameterSlider(label, 0, min, max, 1).WithFormatter(func(v float64) string { return fmt.Sprintf("%.0f", v) }),
		get:    func(p *domain.ContributionParameters) float64 { return float64(*field(p)) },
		set:    func(p *domain.ContributionParameters, v float64) { *field(p) = int(v) },
	}
}

func currency(v float64) string { return output.FormatCurrency(decimal.NewFromFloat(v)) }

func percent(v float64) string { return output.FormatPercentage(decimal.NewFromFloat(v)) }

func scheduleColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Pct", Width: 5},
		{Title: "Contribution", Width: 12},
		{Title: "Cumulative", Width: 12},
		{Title: "Employer", Width: 10},
		{Title: "After-tax", Width: 10},
		{Title: "Total", Width: 12},
		{Title: "", Width: 16},
	}
}

func scheduleRows(s *domain.ScheduleResult) []table.Row {
	if s == nil {
		return nil
	}
	rows := make([]table.Row, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = table.Row{
			r.Label(),
			output.FormatPercentage(r.ContributionPercent()),
			output.FormatCurrency(r.ContributionAmount),
			output.FormatCurrency(r.CumulativeIndividual),
			output.FormatCurrency(r.EmployerAmount),
			output.FormatCurrency(r.AfterTaxAmount),
			output.FormatCurrency(r.CumulativeTotal),
			output.RowMarkers(r.Flags),
		}
	}
	return rows
}
