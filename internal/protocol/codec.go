package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// The wire format is externally tagged: each frame is a one-key JSON
// object whose key is the camelCase variant name and whose value is the
// payload, e.g. {"joinLobby":{"id":5}}. Variants that carry no payload
// are encoded as the bare JSON string "variantName"; on decode the
// {"variantName":null} form is accepted as well.

// ErrUnknownMessage is returned when an inbound frame's variant name is
// not one the client knows about.
var ErrUnknownMessage = errors.New("unknown message variant")

// EncodeClientMessage encodes a client message into its wire frame.
func EncodeClientMessage(msg ClientMessage) ([]byte, error) {
	var tag string
	var payload any

	switch m := msg.(type) {
	case SetUsername:
		tag, payload = "setUsername", m
	case GetLobbies:
		tag = "getLobbies"
	case JoinLobby:
		tag, payload = "joinLobby", m
	case CreateLobby:
		tag, payload = "createLobby", m
	case StartGame:
		tag = "startGame"
	case LeaveLobby:
		tag = "leaveLobby"
	case ClickCard:
		tag, payload = "clickCard", m
	default:
		return nil, fmt.Errorf("cannot encode client message of type %T", msg)
	}

	if payload == nil {
		return json.Marshal(tag)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", tag, err)
	}
	return json.Marshal(map[string]json.RawMessage{tag: raw})
}

// DecodeServerMessage decodes one inbound frame into a server message.
// Frames with an unrecognized variant name return ErrUnknownMessage.
func DecodeServerMessage(data []byte) (ServerMessage, error) {
	tag, payload, err := splitFrame(data)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "handshake":
		return decodePayload[Handshake](tag, payload)
	case "lobbies":
		return decodePayload[Lobbies](tag, payload)
	case "joinLobby":
		return decodePayload[JoinedLobby](tag, payload)
	case "error":
		return decodePayload[ErrorMessage](tag, payload)
	case "playerJoinedLobby":
		return decodePayload[PlayerJoinedLobby](tag, payload)
	case "playerLeftLobby":
		return decodePayload[PlayerLeftLobby](tag, payload)
	case "lobbyOwnerChanged":
		return decodePayload[LobbyOwnerChanged](tag, payload)
	case "ownerLeftLobby":
		return decodePayload[OwnerLeftLobby](tag, payload)
	case "startGame":
		return StartGame{}, nil
	case "clickCard":
		return decodePayload[ClickCard](tag, payload)
	case "initialCards":
		return decodePayload[InitialCards](tag, payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, tag)
	}
}

// splitFrame pulls the variant name and raw payload out of a frame.
func splitFrame(data []byte) (string, json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		// bare string form, no payload
		var tag string
		if err := json.Unmarshal(trimmed, &tag); err != nil {
			return "", nil, fmt.Errorf("failed to parse message frame: %w", err)
		}
		return tag, nil, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return "", nil, fmt.Errorf("failed to parse message frame: %w", err)
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("message frame must have exactly one variant key, got %d", len(obj))
	}
	for tag, payload := range obj {
		return tag, payload, nil
	}
	return "", nil, nil // unreachable
}

func decodePayload[T ServerMessage](tag string, payload json.RawMessage) (ServerMessage, error) {
	var msg T
	if payload == nil || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return msg, nil
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", tag, err)
	}
	return msg, nil
}
