package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakmate/internal/models"
)

type MarkHabitMsg struct {
	Ref string
}

type UnmarkHabitMsg struct {
	Ref string
}

type RestoreHabitMsg struct {
	Ref string
}

type DeleteHabitMsg struct {
	Ref string
}

type Item struct {
	Habit models.Habit
}

func (i Item) Title() string {
	switch i.Habit.Status {
	case models.StatusCompleted:
		return "✓ " + i.Habit.Name
	case models.StatusMissed:
		return "✗ " + i.Habit.Name
	default:
		return "○ " + i.Habit.Name
	}
}

func (i Item) Description() string {
	desc := fmt.Sprintf("streak %d", i.Habit.Streak)
	if i.Habit.Frequency == models.FrequencyWeekly {
		desc += fmt.Sprintf(" · %d/week", i.Habit.Target)
	}
	if due := i.Habit.DueTime(); due != "" {
		desc += " · due " + due
	}
	if i.Habit.Status == models.StatusMissed {
		desc += " · restore with 'r'"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Mark    key.Binding
	Unmark  key.Binding
	Restore key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark done"),
		),
		Unmark: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmark"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore streak"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Mark, keys.Unmark, keys.Restore, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func (m *Model) SetHabits(habits []models.Habit) {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h}
	}
	m.list.SetItems(items)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Selected returns the habit under the cursor, if any.
func (m Model) Selected() (models.Habit, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Habit{}, false
	}
	return item.Habit, true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		if habit, selected := m.Selected(); selected {
			switch {
			case key.Matches(keyMsg, m.keys.Mark):
				return m, func() tea.Msg { return MarkHabitMsg{Ref: habit.ID} }
			case key.Matches(keyMsg, m.keys.Unmark):
				return m, func() tea.Msg { return UnmarkHabitMsg{Ref: habit.ID} }
			case key.Matches(keyMsg, m.keys.Restore):
				return m, func() tea.Msg { return RestoreHabitMsg{Ref: habit.ID} }
			case key.Matches(keyMsg, m.keys.Delete):
				return m, func() tea.Msg { return DeleteHabitMsg{Ref: habit.ID} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
