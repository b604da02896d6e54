package tui

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.confirmForm != nil {
		return docStyle.Render(m.confirmForm.View())
	}

	view := titleStyle.Render("streakmate") + "\n" + m.habitList.View()

	if m.err != nil {
		view += "\n" + dangerStyle.Render("Error: "+m.err.Error())
	} else if m.status != "" {
		view += "\n" + statusStyle.Render(m.status)
	}

	return docStyle.Render(view)
}
