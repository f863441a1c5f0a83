package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/shithead-client/internal/protocol"
)

// updateLobby handles the waiting-lobby screen
func (m Model) updateLobby(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()

	case "s":
		// only the owner may start; the session drops it otherwise
		m.sess.StartGame()

	case "esc", "b":
		m.sess.Leave()
		m.enterBrowserView()
	}

	return m, nil
}

// viewLobby renders the waiting-lobby screen
func (m Model) viewLobby() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("LOBBY #%d", m.snap.LobbyId)))
	s.WriteString("  " + m.connStatus() + "\n")

	// stable listing order for a map-backed roster
	ids := make([]uint64, 0, len(m.snap.Roster))
	for id := range m.snap.Roster {
		ids = append(ids, uint64(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var roster strings.Builder
	roster.WriteString(fmt.Sprintf("Players (%d):\n", len(ids)))
	for _, id := range ids {
		clientId := protocol.ClientId(id)
		line := fmt.Sprintf("  %s", m.snap.Roster[clientId])
		if clientId == m.snap.SelfId {
			line += mutedStyle.Render(" (you)")
		}
		roster.WriteString(listItemStyle.Render(line) + "\n")
	}
	s.WriteString(boxStyle.Render(roster.String()))
	s.WriteString("\n")

	if m.snap.IsOwner {
		s.WriteString(ownerStyle.Render("You own this lobby.") + "\n")
		s.WriteString(instructionStyle.Render("'s' start game  •  ESC leave  •  'q' quit"))
	} else {
		s.WriteString(mutedStyle.Render("Waiting for the owner to start the game...") + "\n")
		s.WriteString(instructionStyle.Render("ESC leave  •  'q' quit"))
	}

	return s.String()
}
