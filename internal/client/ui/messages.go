package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// The model refreshes itself from the shared session state on a short
// tick instead of subscribing to individual events; the sync layer is
// callback-driven, Bubble Tea is message-driven, and polling a snapshot
// is the simplest bridge between the two.
const refreshInterval = 100 * time.Millisecond

// tickMsg asks the model to re-read the session snapshot.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// notice is a shared mailbox for the session's rejection callback,
// which fires on the connection goroutine. The model drains it on the
// next tick.
type notice struct {
	mu   sync.Mutex
	text string
}

func (n *notice) post(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.text = text
}

func (n *notice) take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	text := n.text
	n.text = ""
	return text
}
