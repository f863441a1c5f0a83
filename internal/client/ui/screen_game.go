package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/shithead-client/internal/protocol"
)

// updateGame handles the in-game screen
func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()

	case "left":
		if m.cardCursor > 0 {
			m.cardCursor--
		}

	case "right":
		if m.cardCursor < len(m.snap.CardsInHand)-1 {
			m.cardCursor++
		}

	case "enter":
		if m.cardCursor < len(m.snap.CardsInHand) {
			m.sess.ClickCard(protocol.HandCardLocation(uint32(m.cardCursor)))
		}

	case "t":
		m.sess.ClickCard(protocol.TrashLocation())

	case "esc":
		// navigating away mid-game; no leave command is sent
		m.sess.Leave()
		m.enterBrowserView()
	}

	return m, nil
}

// viewGame renders the in-game screen
func (m Model) viewGame() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("GAME — LOBBY #%d", m.snap.LobbyId)))
	s.WriteString("  " + m.connStatus() + "\n\n")

	s.WriteString(mutedStyle.Render("Three up:") + "\n")
	s.WriteString(renderCards(m.snap.ThreeUpCards, -1) + "\n\n")

	s.WriteString(mutedStyle.Render("Your hand:") + "\n")
	if len(m.snap.CardsInHand) == 0 {
		s.WriteString(mutedStyle.Render("  waiting for cards...") + "\n")
	} else {
		s.WriteString(renderCards(m.snap.CardsInHand, m.cardCursor) + "\n")
	}

	s.WriteString("\n" + instructionStyle.Render(
		"←/→ pick a card  •  ENTER play it  •  't' take trash  •  ESC leave  •  'q' quit"))

	return s.String()
}

func renderCards(cards []protocol.CardId, selected int) string {
	if len(cards) == 0 {
		return mutedStyle.Render("  (none)")
	}
	rendered := make([]string, len(cards))
	for i, card := range cards {
		label := fmt.Sprintf("#%d", card)
		if i == selected {
			rendered[i] = cardSelectedStyle.Render(label)
		} else {
			rendered[i] = cardStyle.Render(label)
		}
	}
	return strings.Join(rendered, " ")
}
