package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/yourusername/shithead-client/internal/client/connection"
	"github.com/yourusername/shithead-client/internal/protocol"
)

// Reserved router entry names. The handshake entry lives for the whole
// session; the join entry only while a join request is in flight; the
// lobby entry only while the client is a lobby member.
const (
	handshakeHandlerName = "session.handshake"
	joinHandlerName      = "session.join"
	lobbyHandlerName     = "session.lobby"
)

// Session drives the lobby protocol over the connection manager and
// mutates the shared State as a side effect of handled messages. It
// registers and removes its router entries as it moves between phases,
// so the entries always reflect the session's current interest.
type Session struct {
	mgr    *connection.Manager
	state  *State
	logger *zap.Logger

	mu            sync.Mutex
	onRejected    func(reason string)
	preferredName string
}

// New creates a session over the given manager and shared state.
func New(mgr *connection.Manager, state *State, logger *zap.Logger) *Session {
	return &Session{
		mgr:    mgr,
		state:  state,
		logger: logger,
	}
}

// Attach registers the session's standing interest in inbound traffic
// and hooks connection loss. Call once, before Manager.Connect.
func (s *Session) Attach() {
	s.mgr.Router().Register(handshakeHandlerName, s.handleHandshake)
	s.mgr.OnClose(s.handleConnectionLost)
}

// OnJoinRejected sets the callback invoked when a join request is
// rejected by the server, typically to navigate back to the browser.
func (s *Session) OnJoinRejected(callback func(reason string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRejected = callback
}

// State returns the shared session state.
func (s *Session) State() *State {
	return s.state
}

// Join requests membership in the given lobby. Joining a lobby the
// client is already a member of is a no-op, which keeps a remounted
// lobby view from running the handshake twice.
func (s *Session) Join(id protocol.LobbyId) {
	if s.state.isMemberOf(id) {
		return
	}
	if !s.state.beginJoin(id) {
		s.logger.Warn("ignoring join request outside of browsing",
			zap.Uint64("lobby_id", uint64(id)),
			zap.String("phase", s.state.phaseNow().String()))
		return
	}

	s.mgr.Router().Register(joinHandlerName, s.handleJoinResponse)
	s.mgr.Send(protocol.JoinLobby{Id: id})
}

// Create asks the server for a new lobby with the given name. The
// server acknowledges with the same joinLobby echo a join gets, so the
// rest of the handshake is shared with Join.
func (s *Session) Create(lobbyName string) {
	if !s.state.beginJoin(0) {
		s.logger.Warn("ignoring create request outside of browsing",
			zap.String("phase", s.state.phaseNow().String()))
		return
	}

	s.mgr.Router().Register(joinHandlerName, s.handleJoinResponse)
	s.mgr.Send(protocol.CreateLobby{LobbyName: lobbyName})
}

// StartGame asks the server to start the game. Only the owner may do
// this; for anyone else it is a no-op.
func (s *Session) StartGame() {
	snap := s.state.Snapshot()
	if snap.Phase != PhaseInLobby || !snap.IsOwner {
		return
	}
	s.mgr.Send(protocol.StartGame{})
}

// Leave exits the current lobby. While waiting in a lobby this sends a
// leaveLobby command; navigating away mid-game sends nothing.
func (s *Session) Leave() {
	switch s.state.phaseNow() {
	case PhaseInLobby:
		s.mgr.Send(protocol.LeaveLobby{})
	case PhaseInGame:
		// no command mid-game
	default:
		return
	}
	s.detachLobby()
}

// SetUsername renames this client. The server sends no acknowledgement,
// so the local name is updated optimistically. The name is remembered
// and re-applied after every handshake, since the server assigns a
// fresh default name on each new connection.
func (s *Session) SetUsername(name string) {
	s.mu.Lock()
	s.preferredName = name
	s.mu.Unlock()

	s.mgr.Send(protocol.SetUsername{NewName: name})
	s.state.setSelfName(name)
}

// ClickCard forwards a card click while in game.
func (s *Session) ClickCard(location protocol.ClickedCardLocation) {
	if s.state.phaseNow() != PhaseInGame {
		return
	}
	s.mgr.Send(protocol.ClickCard{Location: location})
}

// handleHandshake adopts the server-assigned identity. It runs on every
// (re)connection, since the server performs the handshake anew each time.
func (s *Session) handleHandshake(msg protocol.ServerMessage, _ *connection.Manager) {
	hs, ok := msg.(protocol.Handshake)
	if !ok {
		return
	}
	s.state.setSelf(hs.Id, hs.Username)
	s.logger.Info("handshake completed",
		zap.Uint64("client_id", uint64(hs.Id)),
		zap.String("username", hs.Username))

	s.mu.Lock()
	preferred := s.preferredName
	s.mu.Unlock()
	if preferred != "" && preferred != hs.Username {
		s.mgr.Send(protocol.SetUsername{NewName: preferred})
		s.state.setSelfName(preferred)
	}
}

// handleJoinResponse is the transient handler armed while a join or
// create request is in flight. The next message that answers the
// request decides the outcome: the joinLobby echo completes the join,
// anything else rejects it. Ambient traffic that other components
// produce regardless of the join (the handshake, lobby-list replies)
// is not an answer and passes through.
func (s *Session) handleJoinResponse(msg protocol.ServerMessage, _ *connection.Manager) {
	switch m := msg.(type) {
	case protocol.JoinedLobby:
		s.mgr.Router().Unregister(joinHandlerName)
		s.mgr.Router().Register(lobbyHandlerName, s.handleLobbyEvent)
		s.state.adoptLobby(m)
		s.logger.Info("joined lobby",
			zap.Uint64("lobby_id", uint64(m.LobbyId)),
			zap.Int("existing_players", len(m.Players)))

	case protocol.Handshake, protocol.Lobbies:
		// not a response to the join request

	default:
		s.mgr.Router().Unregister(joinHandlerName)
		s.state.reset()
		reason := "join rejected"
		if errMsg, ok := msg.(protocol.ErrorMessage); ok {
			reason = errMsg.Message
		}
		s.logger.Warn("join request rejected", zap.String("reason", reason))
		s.notifyRejected(reason)
	}
}

// handleLobbyEvent is the steady-state handler, registered from the
// join acknowledgement until the client leaves the lobby.
func (s *Session) handleLobbyEvent(msg protocol.ServerMessage, _ *connection.Manager) {
	switch m := msg.(type) {
	case protocol.PlayerJoinedLobby:
		s.state.addPlayer(m.Id, m.Username)

	case protocol.PlayerLeftLobby:
		s.state.removePlayer(m.Id)

	case protocol.LobbyOwnerChanged:
		s.applyNewOwner(m.NewOwnerId)

	case protocol.OwnerLeftLobby:
		s.applyNewOwner(m.NewOwnerId)

	case protocol.StartGame:
		s.state.markInGame()
		s.logger.Info("game started")

	case protocol.InitialCards:
		s.state.setInitialCards(m)

	case protocol.ErrorMessage:
		// a rejected in-lobby command; surface it and stay put
		s.logger.Warn("server rejected a command", zap.String("message", m.Message))
	}
}

func (s *Session) applyNewOwner(newOwnerId protocol.ClientId) {
	if s.state.setOwner(newOwnerId) {
		s.logger.Info("this client now owns the lobby")
	}
}

// handleConnectionLost resets the session when the connection drops
// while in a lobby. The server forgets the membership on disconnect, so
// the client must not pretend to still be in the lobby after the
// reconnect.
func (s *Session) handleConnectionLost(_ *connection.Manager, _ error) {
	if s.state.phaseNow() == PhaseNotInLobby {
		return
	}
	s.logger.Warn("connection lost while in a lobby, leaving")
	s.detachLobby()
}

func (s *Session) detachLobby() {
	s.mgr.Router().Unregister(joinHandlerName)
	s.mgr.Router().Unregister(lobbyHandlerName)
	s.state.reset()
}

func (s *Session) notifyRejected(reason string) {
	s.mu.Lock()
	callback := s.onRejected
	s.mu.Unlock()

	if callback != nil {
		callback(reason)
	}
}
