package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakmate/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		frameW, frameH := docStyle.GetFrameSize()
		m.habitList.SetSize(msg.Width-frameW, msg.Height-frameH-2)
		return m, nil

	case habitsLoadedMsg:
		m.habitList.SetHabits(msg.habits)
		m.err = nil
		return m, nil

	case actionDoneMsg:
		m.status = msg.status
		m.err = nil
		return m, m.loadHabits

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	// A confirmation form swallows everything until it finishes
	if m.confirmForm != nil {
		form, cmd := m.confirmForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.confirmForm = f
		}

		if m.confirmForm.State == huh.StateCompleted {
			confirmed := m.confirmDelete != nil && *m.confirmDelete
			ref, name := m.deleteRef, m.deleteName
			m.confirmForm = nil
			m.deleteRef, m.deleteName = "", ""

			if !confirmed {
				m.status = "Delete cancelled"
				return m, nil
			}
			return m, func() tea.Msg {
				if err := m.svc.DeleteHabit(ref); err != nil {
					return errMsg{err}
				}
				return actionDoneMsg{status: fmt.Sprintf("Deleted %q", name)}
			}
		}
		if m.confirmForm.State == huh.StateAborted {
			m.confirmForm = nil
			m.deleteRef, m.deleteName = "", ""
			m.status = "Delete cancelled"
			return m, nil
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case habitlist.MarkHabitMsg:
		return m, func() tea.Msg {
			habit, err := m.svc.Complete(msg.Ref, "")
			if err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{status: fmt.Sprintf("Marked %q done (streak %d)", habit.Name, habit.Streak)}
		}

	case habitlist.UnmarkHabitMsg:
		return m, func() tea.Msg {
			habit, err := m.svc.Uncomplete(msg.Ref, "")
			if err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{status: fmt.Sprintf("Unmarked %q", habit.Name)}
		}

	case habitlist.RestoreHabitMsg:
		return m, func() tea.Msg {
			habit, _, err := m.svc.Restore(msg.Ref)
			if err != nil {
				return errMsg{err}
			}
			return actionDoneMsg{status: fmt.Sprintf("Restored %q", habit.Name)}
		}

	case habitlist.DeleteHabitMsg:
		habit, err := m.svc.GetHabit(msg.Ref)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.deleteRef = habit.ID
		m.deleteName = habit.Name
		m.confirmDelete = new(bool)
		m.confirmForm = newDeleteConfirmForm(habit.Name, m.confirmDelete)
		return m, m.confirmForm.Init()
	}

	var cmd tea.Cmd
	m.habitList, cmd = m.habitList.Update(msg)
	return m, cmd
}
