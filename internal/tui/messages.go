package tui

import (
	"github.com/rgehrsitz/paygo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneParameters Scene = iota
	SceneSchedule
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneParameters:
		return "Parameters"
	case SceneSchedule:
		return "Schedule"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// InputLoadedMsg carries the parameters read from an input file
type InputLoadedMsg struct {
	Input *domain.PaycheckInput
}
