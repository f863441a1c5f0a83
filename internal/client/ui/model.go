package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/shithead-client/internal/client/connection"
	"github.com/yourusername/shithead-client/internal/client/lobbies"
	"github.com/yourusername/shithead-client/internal/client/session"
	"github.com/yourusername/shithead-client/internal/protocol"
)

// ViewState represents the current view in the TUI
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewLobby
	ViewGame
	ViewUsernameEntry
)

// Model is the main Bubble Tea model. It only reads session snapshots
// and issues session commands; all protocol state lives below it.
type Model struct {
	viewState ViewState
	connMgr   *connection.Manager
	sess      *session.Session
	poller    *lobbies.Poller
	rejection *notice

	snap      session.Snapshot
	lobbyList []protocol.ExposedLobbyInfo

	cursor       int
	filterInput  string
	filterActive bool
	createInput  string
	createActive bool
	nameInput    string
	cardCursor   int
	statusLine   string

	pollInterval time.Duration
	width        int
	height       int
}

// NewModel creates the Bubble Tea model over an already-attached
// session. The caller owns the manager's lifetime.
func NewModel(connMgr *connection.Manager, sess *session.Session, poller *lobbies.Poller, pollInterval time.Duration) Model {
	rejection := &notice{}
	sess.OnJoinRejected(rejection.post)

	return Model{
		viewState:    ViewBrowser,
		connMgr:      connMgr,
		sess:         sess,
		poller:       poller,
		rejection:    rejection,
		snap:         sess.State().Snapshot(),
		pollInterval: pollInterval,
	}
}

// Init starts the lobby-list poller and the refresh tick.
func (m Model) Init() tea.Cmd {
	m.poller.Start(m.pollInterval)
	return tick()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m.refresh(), tick()

	case tea.KeyMsg:
		switch m.viewState {
		case ViewBrowser:
			return m.updateBrowser(msg)
		case ViewLobby:
			return m.updateLobby(msg)
		case ViewGame:
			return m.updateGame(msg)
		case ViewUsernameEntry:
			return m.updateUsernameEntry(msg)
		}
	}

	return m, nil
}

// refresh re-reads the shared state and follows phase changes the
// session made behind the UI's back (game started, kicked back to the
// browser by a rejection or a disconnect).
func (m Model) refresh() Model {
	m.snap = m.sess.State().Snapshot()
	m.lobbyList = m.poller.Lobbies()

	if reason := m.rejection.take(); reason != "" {
		m.statusLine = reason
	}

	switch m.snap.Phase {
	case session.PhaseInLobby:
		if m.viewState == ViewBrowser {
			m.enterLobbyView()
		}
	case session.PhaseInGame:
		if m.viewState != ViewGame {
			m.viewState = ViewGame
			m.cardCursor = 0
		}
	case session.PhaseNotInLobby:
		if m.viewState == ViewLobby || m.viewState == ViewGame {
			m.enterBrowserView()
		}
	}
	return m
}

func (m *Model) enterLobbyView() {
	m.viewState = ViewLobby
	m.poller.Stop()
}

func (m *Model) enterBrowserView() {
	m.viewState = ViewBrowser
	m.cursor = 0
	m.poller.Start(m.pollInterval)
}

// quit leaves the lobby if needed and shuts the program down.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.sess.Leave()
	return m, tea.Quit
}

// View renders the current view
func (m Model) View() string {
	switch m.viewState {
	case ViewBrowser:
		return m.viewBrowser()
	case ViewLobby:
		return m.viewLobby()
	case ViewGame:
		return m.viewGame()
	case ViewUsernameEntry:
		return m.viewUsernameEntry()
	}
	return ""
}

// connStatus renders the shared connection indicator in every header.
func (m Model) connStatus() string {
	if m.connMgr.State() == connection.StateOpen {
		return highlightStyle.Render("● online")
	}
	return errorStyle.Render("○ reconnecting")
}
