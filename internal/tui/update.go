package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(5, msg.Height-8))
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case InputLoadedMsg:
		m.err = nil
		if msg.Input != nil {
			m.setParams(msg.Input.Contribution)
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keyboard shortcuts
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.currentScene == SceneHelp {
			return m, navigate(m.previousScene)
		}
		return m, navigate(SceneHelp)

	case key.Matches(msg, m.keys.Next):
		if m.currentScene == SceneParameters {
			return m, navigate(SceneSchedule)
		}
		return m, navigate(SceneParameters)
	}

	// A load failure leaves nothing to edit
	if m.err != nil {
		return m, nil
	}

	switch m.currentScene {
	case SceneParameters:
		return m.updateParameters(msg)
	case SceneSchedule:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateParameters moves focus and adjusts the focused slider
func (m Model) updateParameters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.setFocus(m.focused - 1)
	case key.Matches(msg, m.keys.Down):
		m.setFocus(m.focused + 1)
	case key.Matches(msg, m.keys.Increase):
		m.adjust(true)
	case key.Matches(msg, m.keys.Decrease):
		m.adjust(false)
	case key.Matches(msg, m.keys.AutoCap):
		m.params.AutomaticallyCap = !m.params.AutomaticallyCap
		m.regenerate()
	}
	return m, nil
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: s}
	}
}
