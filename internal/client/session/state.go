package session

import (
	"sync"

	"github.com/yourusername/shithead-client/internal/protocol"
)

// Phase is where the session currently stands in the lobby protocol.
type Phase int

const (
	// PhaseNotInLobby means the client is browsing, not in any lobby.
	PhaseNotInLobby Phase = iota

	// PhaseJoining means a join request is in flight, waiting for the
	// server's acknowledgement.
	PhaseJoining

	// PhaseInLobby means the client is a lobby member waiting for the
	// game to start.
	PhaseInLobby

	// PhaseInGame means the game in the client's lobby has started.
	PhaseInGame
)

// String returns the string representation of a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotInLobby:
		return "not in lobby"
	case PhaseJoining:
		return "joining"
	case PhaseInLobby:
		return "in lobby"
	case PhaseInGame:
		return "in game"
	default:
		return "unknown"
	}
}

// State is the client-held lobby state the UI renders. It is a single
// shared instance, mutated only by the session's message handlers and
// command issuers, and read by other goroutines through Snapshot.
type State struct {
	mu sync.RWMutex

	phase    Phase
	lobbyId  protocol.LobbyId
	isOwner  bool
	roster   map[protocol.ClientId]string
	selfId   protocol.ClientId
	selfName string

	cardsInHand  []protocol.CardId
	threeUpCards []protocol.CardId
}

// Snapshot is a read-only copy of the session state at one moment.
// LobbyId is only meaningful when Phase is not PhaseNotInLobby.
type Snapshot struct {
	Phase    Phase
	LobbyId  protocol.LobbyId
	IsOwner  bool
	Roster   map[protocol.ClientId]string
	SelfId   protocol.ClientId
	SelfName string

	CardsInHand  []protocol.CardId
	ThreeUpCards []protocol.CardId
}

// NewState creates the shared session state.
func NewState() *State {
	return &State{
		roster: make(map[protocol.ClientId]string),
	}
}

// Snapshot returns a copy of the current state, safe to read from any
// goroutine.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := make(map[protocol.ClientId]string, len(s.roster))
	for id, name := range s.roster {
		roster[id] = name
	}
	return Snapshot{
		Phase:        s.phase,
		LobbyId:      s.lobbyId,
		IsOwner:      s.isOwner,
		Roster:       roster,
		SelfId:       s.selfId,
		SelfName:     s.selfName,
		CardsInHand:  append([]protocol.CardId(nil), s.cardsInHand...),
		ThreeUpCards: append([]protocol.CardId(nil), s.threeUpCards...),
	}
}

func (s *State) setSelf(id protocol.ClientId, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selfId = id
	s.selfName = name
}

func (s *State) setSelfName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selfName = name
	if s.phase == PhaseInLobby || s.phase == PhaseInGame {
		s.roster[s.selfId] = name
	}
}

func (s *State) phaseNow() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// isMemberOf reports whether the session is already in the given lobby.
func (s *State) isMemberOf(id protocol.LobbyId) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (s.phase == PhaseInLobby || s.phase == PhaseInGame) && s.lobbyId == id
}

// beginJoin moves NotInLobby -> Joining. Returns false when the session
// is in any other phase.
func (s *State) beginJoin(id protocol.LobbyId) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseNotInLobby {
		return false
	}
	s.phase = PhaseJoining
	s.lobbyId = id
	return true
}

// adoptLobby applies the server's join acknowledgement: Joining ->
// InLobby, roster seeded from the payload. The creator of a lobby is
// its first member without an explicit playerJoinedLobby event, so the
// local client is inserted when the payload doesn't list it; an empty
// payload also means this client created the lobby and therefore owns it.
func (s *State) adoptLobby(ack protocol.JoinedLobby) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseInLobby
	s.lobbyId = ack.LobbyId
	s.isOwner = len(ack.Players) == 0

	s.roster = make(map[protocol.ClientId]string, len(ack.Players)+1)
	for _, p := range ack.Players {
		s.roster[p.Id] = p.Username
	}
	if _, ok := s.roster[s.selfId]; !ok {
		s.roster[s.selfId] = s.selfName
	}
}

func (s *State) addPlayer(id protocol.ClientId, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster[id] = name
}

func (s *State) removePlayer(id protocol.ClientId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.roster, id)
}

// setOwner reassigns ownership and reports whether the local client is
// the new owner.
func (s *State) setOwner(newOwnerId protocol.ClientId) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOwner = newOwnerId == s.selfId
	return s.isOwner
}

func (s *State) markInGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseInLobby {
		s.phase = PhaseInGame
	}
}

func (s *State) setInitialCards(cards protocol.InitialCards) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cardsInHand = append([]protocol.CardId(nil), cards.CardsInHand...)
	s.threeUpCards = append([]protocol.CardId(nil), cards.ThreeUpCards...)
}

// reset returns the session to NotInLobby, clearing everything that
// belongs to a lobby membership. Self identity is kept.
func (s *State) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseNotInLobby
	s.lobbyId = 0
	s.isOwner = false
	s.roster = make(map[protocol.ClientId]string)
	s.cardsInHand = nil
	s.threeUpCards = nil
}
