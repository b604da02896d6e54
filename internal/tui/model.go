// Package tui is the interactive dashboard: the habit list with live streak
// and status, completion toggling, restores and deletes.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakmate/internal/models"
	"github.com/julianstephens/streakmate/internal/service"
	"github.com/julianstephens/streakmate/internal/tui/components/habitlist"
)

type habitsLoadedMsg struct {
	habits []models.Habit
}

type actionDoneMsg struct {
	status string
}

type errMsg struct {
	err error
}

type Model struct {
	svc       *service.Service
	habitList habitlist.Model

	// confirmDelete lives behind a pointer so the form keeps writing to the
	// same bool as the model value gets copied between updates
	confirmForm   *huh.Form
	confirmDelete *bool
	deleteRef     string
	deleteName    string

	status   string
	err      error
	width    int
	height   int
	quitting bool
}

func NewModel(svc *service.Service) Model {
	return Model{
		svc:       svc,
		habitList: habitlist.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadHabits
}

func (m Model) loadHabits() tea.Msg {
	habits, err := m.svc.ListHabits()
	if err != nil {
		return errMsg{err}
	}
	return habitsLoadedMsg{habits: habits}
}

func newDeleteConfirmForm(name string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete habit \"" + name + "\"?").
				Description("Its completions, explanations and notifications go with it.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(confirmed),
		),
	)
}
