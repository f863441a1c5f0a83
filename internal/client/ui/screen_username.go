package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateUsernameEntry handles the rename screen
func (m Model) updateUsernameEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "esc":
		m.viewState = ViewBrowser

	case "enter":
		if len(m.nameInput) > 0 {
			m.sess.SetUsername(m.nameInput)
			m.viewState = ViewBrowser
		}

	case "backspace":
		if len(m.nameInput) > 0 {
			m.nameInput = m.nameInput[:len(m.nameInput)-1]
		}

	default:
		// limit names to 20 chars
		if len(msg.String()) == 1 && len(m.nameInput) < 20 {
			m.nameInput += msg.String()
		}
	}

	return m, nil
}

// viewUsernameEntry renders the rename screen
func (m Model) viewUsernameEntry() string {
	title := titleStyle.Render("CHANGE NAME")

	prompt := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Margin(1, 0).
		Render("Enter your new name:")

	inputText := m.nameInput
	if len(inputText) == 0 {
		inputText = mutedStyle.Render("type here...")
	} else {
		inputText = highlightStyle.Render(inputText) + highlightStyle.Render("▊")
	}
	inputField := inputBoxStyle.Render(inputText)

	instructions := instructionStyle.Render(
		"ENTER to save  •  ESC to go back")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		prompt,
		inputField,
		instructions,
	)
}
