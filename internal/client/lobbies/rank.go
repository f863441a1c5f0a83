package lobbies

import (
	"sort"
	"strings"

	"github.com/yourusername/shithead-client/internal/protocol"
)

// Rank filters and orders lobbies by how well their names match the
// query: prefix matches first, then substring matches, then names that
// contain the query's characters in order. Pure and stateless; an empty
// query returns the input order unchanged.
func Rank(query string, list []protocol.ExposedLobbyInfo) []protocol.ExposedLobbyInfo {
	if query == "" {
		return append([]protocol.ExposedLobbyInfo(nil), list...)
	}

	q := strings.ToLower(query)
	type scored struct {
		info  protocol.ExposedLobbyInfo
		score int
	}
	matches := make([]scored, 0, len(list))
	for _, info := range list {
		if s := matchScore(q, strings.ToLower(info.Name)); s > 0 {
			matches = append(matches, scored{info: info, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]protocol.ExposedLobbyInfo, len(matches))
	for i, m := range matches {
		result[i] = m.info
	}
	return result
}

func matchScore(query, name string) int {
	switch {
	case strings.HasPrefix(name, query):
		return 3
	case strings.Contains(name, query):
		return 2
	case isSubsequence(query, name):
		return 1
	default:
		return 0
	}
}

func isSubsequence(query, name string) bool {
	want := []rune(query)
	i := 0
	for _, r := range name {
		if i < len(want) && r == want[i] {
			i++
		}
	}
	return i == len(want)
}
