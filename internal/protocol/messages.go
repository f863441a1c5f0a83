package protocol //handles communication protocol between the client and the game server

import (
	"encoding/json"
	"fmt"
)

// ClientId is the server-assigned identifier of a connected client.
type ClientId uint64

// LobbyId identifies a lobby on the server.
type LobbyId uint64

// CardId identifies a card within the server's deck.
type CardId uint32

// ExposedLobbyPlayerInfo is the roster entry the server exposes for a lobby member.
type ExposedLobbyPlayerInfo struct {
	Id       ClientId `json:"id"`
	Username string   `json:"username"`
}

// ExposedLobbyInfo is the information about a lobby exposed in the lobby list.
type ExposedLobbyInfo struct {
	Id      LobbyId                  `json:"id"`
	Name    string                   `json:"name"`
	OwnerId ClientId                 `json:"owner_id"`
	Players []ExposedLobbyPlayerInfo `json:"players"`
}

// ClientMessage is a message sent from the client to the server.
type ClientMessage interface {
	isClientMessage()
}

// SetUsername changes this client's display name.
type SetUsername struct {
	NewName string `json:"newName"`
}

// GetLobbies requests the current lobby list.
type GetLobbies struct{}

// JoinLobby asks to join an existing lobby.
type JoinLobby struct {
	Id LobbyId `json:"id"`
}

// CreateLobby creates a new lobby owned by this client.
type CreateLobby struct {
	LobbyName string `json:"lobbyName"`
}

// StartGame is sent by the lobby owner to start the game, and broadcast
// by the server to every lobby member once the game has started.
type StartGame struct{}

// LeaveLobby leaves the current lobby.
type LeaveLobby struct{}

// ClickCard reports a card click. Sent while in game; the server echoes
// clicks of other players back with the same shape.
type ClickCard struct {
	Location ClickedCardLocation `json:"location"`
}

func (SetUsername) isClientMessage() {}
func (GetLobbies) isClientMessage()  {}
func (JoinLobby) isClientMessage()   {}
func (CreateLobby) isClientMessage() {}
func (StartGame) isClientMessage()   {}
func (LeaveLobby) isClientMessage()  {}
func (ClickCard) isClientMessage()   {}

// ServerMessage is a message sent from the server to the client.
type ServerMessage interface {
	isServerMessage()
}

// Handshake assigns the client its id and initial username. It is the
// first message on every connection.
type Handshake struct {
	Id       ClientId `json:"id"`
	Username string   `json:"username"`
}

// Lobbies carries the current lobby list, in response to GetLobbies.
type Lobbies struct {
	List []ExposedLobbyInfo `json:"list"`
}

// JoinedLobby acknowledges a JoinLobby or CreateLobby command. Players
// holds the members that were already in the lobby, so it is empty for
// the lobby's creator.
type JoinedLobby struct {
	LobbyId LobbyId                  `json:"lobbyId"`
	Players []ExposedLobbyPlayerInfo `json:"players"`
}

// ErrorMessage reports a rejected command.
type ErrorMessage struct {
	Message string `json:"message"`
}

// PlayerJoinedLobby announces a new member of the current lobby.
type PlayerJoinedLobby struct {
	Id       ClientId `json:"id"`
	Username string   `json:"username"`
}

// PlayerLeftLobby announces that a member left the current lobby.
type PlayerLeftLobby struct {
	Id ClientId `json:"id"`
}

// LobbyOwnerChanged announces the new owner of the current lobby.
type LobbyOwnerChanged struct {
	NewOwnerId ClientId `json:"newOwnerId"`
}

// OwnerLeftLobby announces that the owner left and ownership moved to
// another member. Same payload as LobbyOwnerChanged, distinct tag.
type OwnerLeftLobby struct {
	NewOwnerId ClientId `json:"newOwnerId"`
}

// InitialCards carries this client's starting cards when the game begins.
type InitialCards struct {
	CardsInHand  []CardId `json:"cardsInHand"`
	ThreeUpCards []CardId `json:"threeUpCards"`
}

func (Handshake) isServerMessage()         {}
func (Lobbies) isServerMessage()           {}
func (JoinedLobby) isServerMessage()       {}
func (ErrorMessage) isServerMessage()      {}
func (PlayerJoinedLobby) isServerMessage() {}
func (PlayerLeftLobby) isServerMessage()   {}
func (LobbyOwnerChanged) isServerMessage() {}
func (OwnerLeftLobby) isServerMessage()    {}
func (StartGame) isServerMessage()         {}
func (ClickCard) isServerMessage()         {}
func (InitialCards) isServerMessage()      {}

// ClickedCardLocation is where a card click landed: the trash pile, or
// one of the player's own cards. On the wire it is either the string
// "trash" or {"myCards":{"cardIndex":n}}.
type ClickedCardLocation struct {
	Trash   bool
	MyCards *MyCardsLocation
}

// MyCardsLocation points at a card in the player's own hand.
type MyCardsLocation struct {
	CardIndex uint32 `json:"cardIndex"`
}

// TrashLocation returns a click on the trash pile.
func TrashLocation() ClickedCardLocation {
	return ClickedCardLocation{Trash: true}
}

// HandCardLocation returns a click on the player's own card at the given index.
func HandCardLocation(index uint32) ClickedCardLocation {
	return ClickedCardLocation{MyCards: &MyCardsLocation{CardIndex: index}}
}

func (l ClickedCardLocation) MarshalJSON() ([]byte, error) {
	if l.Trash {
		return json.Marshal("trash")
	}
	if l.MyCards == nil {
		return nil, fmt.Errorf("clicked card location has neither trash nor myCards set")
	}
	return json.Marshal(map[string]*MyCardsLocation{"myCards": l.MyCards})
}

func (l *ClickedCardLocation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "trash" {
			return fmt.Errorf("unknown clicked card location %q", s)
		}
		*l = ClickedCardLocation{Trash: true}
		return nil
	}

	var obj struct {
		MyCards *MyCardsLocation `json:"myCards"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to parse clicked card location: %w", err)
	}
	if obj.MyCards == nil {
		return fmt.Errorf("clicked card location object is missing myCards")
	}
	*l = ClickedCardLocation{MyCards: obj.MyCards}
	return nil
}
