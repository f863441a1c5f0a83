package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeClientMessage_PayloadVariants(t *testing.T) {
	data, err := EncodeClientMessage(JoinLobby{Id: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"joinLobby":{"id":5}}`, string(data))

	data, err = EncodeClientMessage(SetUsername{NewName: "alice"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"setUsername":{"newName":"alice"}}`, string(data))

	data, err = EncodeClientMessage(CreateLobby{LobbyName: "friday night"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"createLobby":{"lobbyName":"friday night"}}`, string(data))
}

func TestEncodeClientMessage_UnitVariantsAreBareStrings(t *testing.T) {
	for _, tc := range []struct {
		msg  ClientMessage
		want string
	}{
		{GetLobbies{}, `"getLobbies"`},
		{StartGame{}, `"startGame"`},
		{LeaveLobby{}, `"leaveLobby"`},
	} {
		data, err := EncodeClientMessage(tc.msg)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(data))
	}
}

func TestEncodeClientMessage_ClickCardLocations(t *testing.T) {
	data, err := EncodeClientMessage(ClickCard{Location: TrashLocation()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"clickCard":{"location":"trash"}}`, string(data))

	data, err = EncodeClientMessage(ClickCard{Location: HandCardLocation(2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"clickCard":{"location":{"myCards":{"cardIndex":2}}}}`, string(data))
}

func TestDecodeServerMessage_JoinAck(t *testing.T) {
	msg, err := DecodeServerMessage([]byte(`{"joinLobby":{"lobbyId":5,"players":[{"id":1,"username":"a"}]}}`))
	require.NoError(t, err)

	ack, ok := msg.(JoinedLobby)
	require.True(t, ok, "expected JoinedLobby, got %T", msg)
	assert.Equal(t, LobbyId(5), ack.LobbyId)
	require.Len(t, ack.Players, 1)
	assert.Equal(t, ClientId(1), ack.Players[0].Id)
	assert.Equal(t, "a", ack.Players[0].Username)
}

func TestDecodeServerMessage_Handshake(t *testing.T) {
	msg, err := DecodeServerMessage([]byte(`{"handshake":{"id":7,"username":"brave-gopher"}}`))
	require.NoError(t, err)
	assert.Equal(t, Handshake{Id: 7, Username: "brave-gopher"}, msg)
}

func TestDecodeServerMessage_UnitVariantForms(t *testing.T) {
	// serde encodes payload-less variants as a bare string
	msg, err := DecodeServerMessage([]byte(`"startGame"`))
	require.NoError(t, err)
	assert.Equal(t, StartGame{}, msg)

	// the null-payload object form is accepted too
	msg, err = DecodeServerMessage([]byte(`{"startGame":null}`))
	require.NoError(t, err)
	assert.Equal(t, StartGame{}, msg)
}

func TestDecodeServerMessage_RosterEvents(t *testing.T) {
	msg, err := DecodeServerMessage([]byte(`{"playerJoinedLobby":{"id":3,"username":"c"}}`))
	require.NoError(t, err)
	assert.Equal(t, PlayerJoinedLobby{Id: 3, Username: "c"}, msg)

	msg, err = DecodeServerMessage([]byte(`{"playerLeftLobby":{"id":3}}`))
	require.NoError(t, err)
	assert.Equal(t, PlayerLeftLobby{Id: 3}, msg)

	msg, err = DecodeServerMessage([]byte(`{"ownerLeftLobby":{"newOwnerId":2}}`))
	require.NoError(t, err)
	assert.Equal(t, OwnerLeftLobby{NewOwnerId: 2}, msg)

	msg, err = DecodeServerMessage([]byte(`{"lobbyOwnerChanged":{"newOwnerId":4}}`))
	require.NoError(t, err)
	assert.Equal(t, LobbyOwnerChanged{NewOwnerId: 4}, msg)
}

func TestDecodeServerMessage_Error(t *testing.T) {
	msg, err := DecodeServerMessage([]byte(`{"error":{"message":"this lobby is full"}}`))
	require.NoError(t, err)
	assert.Equal(t, ErrorMessage{Message: "this lobby is full"}, msg)
}

func TestDecodeServerMessage_InitialCards(t *testing.T) {
	msg, err := DecodeServerMessage([]byte(`{"initialCards":{"cardsInHand":[1,2,3],"threeUpCards":[4,5,6]}}`))
	require.NoError(t, err)
	assert.Equal(t, InitialCards{
		CardsInHand:  []CardId{1, 2, 3},
		ThreeUpCards: []CardId{4, 5, 6},
	}, msg)
}

func TestDecodeServerMessage_UnknownVariant(t *testing.T) {
	_, err := DecodeServerMessage([]byte(`{"somethingNew":{"x":1}}`))
	require.ErrorIs(t, err, ErrUnknownMessage)

	_, err = DecodeServerMessage([]byte(`"somethingNew"`))
	require.ErrorIs(t, err, ErrUnknownMessage)
}

func TestDecodeServerMessage_MalformedFrames(t *testing.T) {
	_, err := DecodeServerMessage([]byte(`not json`))
	require.Error(t, err)

	// two variant keys is not a valid frame
	_, err = DecodeServerMessage([]byte(`{"startGame":null,"error":{"message":"x"}}`))
	require.Error(t, err)
}

func TestClickedCardLocation_Unmarshal(t *testing.T) {
	var loc ClickedCardLocation
	require.NoError(t, loc.UnmarshalJSON([]byte(`"trash"`)))
	assert.True(t, loc.Trash)

	require.NoError(t, loc.UnmarshalJSON([]byte(`{"myCards":{"cardIndex":1}}`)))
	require.NotNil(t, loc.MyCards)
	assert.Equal(t, uint32(1), loc.MyCards.CardIndex)

	assert.Error(t, loc.UnmarshalJSON([]byte(`"discard"`)))
	assert.Error(t, loc.UnmarshalJSON([]byte(`{}`)))
}
