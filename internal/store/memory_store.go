package store

import (
	"strings"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// MemoryStore holds the derived player table. It is filled once at construction
// and never written again, so readers share it without locking.
type MemoryStore struct {
	players []players.Valued
	byName  map[string]int
}

// NewMemoryStore copies vals into a new store. The first record wins when two
// players share a name.
func NewMemoryStore(vals []players.Valued) *MemoryStore {
	s := &MemoryStore{
		players: make([]players.Valued, len(vals)),
		byName:  make(map[string]int, len(vals)),
	}
	copy(s.players, vals)
	for i, v := range s.players {
		key := nameKey(v.FullName)
		if _, seen := s.byName[key]; !seen {
			s.byName[key] = i
		}
	}
	return s
}

// ListPlayers returns a copy of the table in load order.
func (s *MemoryStore) ListPlayers() []players.Valued {
	result := make([]players.Valued, len(s.players))
	copy(result, s.players)
	return result
}

// GetPlayer looks a player up by full name, ignoring case.
func (s *MemoryStore) GetPlayer(name string) (players.Valued, bool) {
	i, ok := s.byName[nameKey(name)]
	if !ok {
		return players.Valued{}, false
	}
	return s.players[i], true
}

// Len reports how many players the store holds.
func (s *MemoryStore) Len() int {
	return len(s.players)
}

func nameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
