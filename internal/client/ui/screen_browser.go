package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/shithead-client/internal/client/lobbies"
	"github.com/yourusername/shithead-client/internal/protocol"
)

// updateBrowser handles the lobby browser screen
func (m Model) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.createActive {
		return m.updateCreateForm(msg)
	}
	if m.filterActive {
		return m.updateFilterInput(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down":
		if m.cursor < len(m.visibleLobbies())-1 {
			m.cursor++
		}

	case "enter":
		visible := m.visibleLobbies()
		if m.cursor < len(visible) {
			m.statusLine = ""
			m.sess.Join(visible[m.cursor].Id)
		}

	case "c":
		m.createActive = true
		m.createInput = ""

	case "u":
		m.viewState = ViewUsernameEntry
		m.nameInput = m.snap.SelfName

	case "/":
		m.filterActive = true
	}

	return m, nil
}

func (m Model) updateCreateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.createActive = false

	case "enter":
		name := strings.TrimSpace(m.createInput)
		if name != "" {
			m.createActive = false
			m.statusLine = ""
			m.sess.Create(name)
		}

	case "backspace":
		if len(m.createInput) > 0 {
			m.createInput = m.createInput[:len(m.createInput)-1]
		}

	default:
		if len(msg.String()) == 1 && len(m.createInput) < 30 {
			m.createInput += msg.String()
		}
	}

	return m, nil
}

func (m Model) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterActive = false
		m.filterInput = ""
		m.cursor = 0

	case "enter":
		m.filterActive = false

	case "backspace":
		if len(m.filterInput) > 0 {
			m.filterInput = m.filterInput[:len(m.filterInput)-1]
		}

	default:
		if len(msg.String()) == 1 {
			m.filterInput += msg.String()
			m.cursor = 0
		}
	}

	return m, nil
}

func (m Model) visibleLobbies() []protocol.ExposedLobbyInfo {
	return lobbies.Rank(m.filterInput, m.lobbyList)
}

// viewBrowser renders the lobby browser screen
func (m Model) viewBrowser() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SHITHEAD — LOBBIES"))
	s.WriteString("  " + m.connStatus() + "\n")
	s.WriteString(mutedStyle.Render(fmt.Sprintf("playing as %s (#%d)", m.snap.SelfName, m.snap.SelfId)) + "\n")

	if m.createActive {
		s.WriteString("\nNew lobby name:\n")
		s.WriteString(inputBoxStyle.Render(m.createInput+"▊") + "\n")
		s.WriteString(instructionStyle.Render("ENTER to create  •  ESC to cancel"))
		return s.String()
	}

	if m.filterActive || m.filterInput != "" {
		s.WriteString("\nFilter: " + highlightStyle.Render(m.filterInput))
		if m.filterActive {
			s.WriteString(highlightStyle.Render("▊"))
		}
		s.WriteString("\n")
	}

	visible := m.visibleLobbies()
	var list strings.Builder
	if len(visible) == 0 {
		list.WriteString(mutedStyle.Render("no lobbies yet — press 'c' to create one"))
	}
	for i, lobby := range visible {
		line := fmt.Sprintf("%s  %s", lobby.Name, mutedStyle.Render(fmt.Sprintf("(%d players)", len(lobby.Players))))
		if i == m.cursor {
			line = selectedStyle.Render("> ") + selectedStyle.Render(line)
		} else {
			line = "  " + listItemStyle.Render(line)
		}
		list.WriteString(line + "\n")
	}
	s.WriteString(boxStyle.Render(list.String()))

	if m.statusLine != "" {
		s.WriteString("\n" + errorStyle.Render(m.statusLine) + "\n")
	}

	s.WriteString("\n" + instructionStyle.Render(
		"↑/↓ select  •  ENTER join  •  'c' create  •  '/' filter  •  'u' rename  •  'q' quit"))

	return s.String()
}
