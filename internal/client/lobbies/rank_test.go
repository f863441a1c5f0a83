package lobbies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/shithead-client/internal/protocol"
)

func lobbyNames(list []protocol.ExposedLobbyInfo) []string {
	names := make([]string, len(list))
	for i, info := range list {
		names[i] = info.Name
	}
	return names
}

func makeLobbies(names ...string) []protocol.ExposedLobbyInfo {
	list := make([]protocol.ExposedLobbyInfo, len(names))
	for i, name := range names {
		list[i] = protocol.ExposedLobbyInfo{Id: protocol.LobbyId(i + 1), Name: name}
	}
	return list
}

func TestRankEmptyQueryKeepsServerOrder(t *testing.T) {
	list := makeLobbies("zeta", "alpha", "mid")

	got := Rank("", list)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, lobbyNames(got))
}

func TestRankPrefixBeatsSubstringBeatsSubsequence(t *testing.T) {
	list := makeLobbies(
		"casual round duel", // has c, a, r, d in order
		"wildcard fans",     // contains "card"
		"card sharks",       // prefix
	)

	got := Rank("card", list)
	assert.Equal(t, []string{"card sharks", "wildcard fans", "casual round duel"}, lobbyNames(got))
}

func TestRankDropsNonMatches(t *testing.T) {
	list := makeLobbies("friday night", "weekend", "fri")

	got := Rank("fri", list)
	assert.Equal(t, []string{"friday night", "fri"}, lobbyNames(got))
}

func TestRankIsCaseInsensitive(t *testing.T) {
	list := makeLobbies("Friday Night")

	got := Rank("fRiDaY", list)
	assert.Equal(t, []string{"Friday Night"}, lobbyNames(got))
}

func TestRankStableWithinTier(t *testing.T) {
	list := makeLobbies("game one", "game two", "game three")

	// all three are prefix matches; server order must hold
	got := Rank("game", list)
	assert.Equal(t, []string{"game one", "game two", "game three"}, lobbyNames(got))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	list := makeLobbies("beta", "alpha")

	Rank("alpha", list)
	assert.Equal(t, []string{"beta", "alpha"}, lobbyNames(list))
}
