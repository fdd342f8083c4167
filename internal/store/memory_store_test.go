package store

import (
	"testing"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

func valued(first, last string, value float64) players.Valued {
	r := players.Record{FirstName: first, LastName: last}
	return players.Valued{Record: r, FullName: r.Name(), ValueScore: value}
}

func TestMemoryStoreListAndGet(t *testing.T) {
	s := NewMemoryStore([]players.Valued{
		valued("Tim", "Duncan", 600),
		valued("Manu", "Ginobili", 300),
	})

	if got := s.Len(); got != 2 {
		t.Fatalf("expected 2 players, got %d", got)
	}
	list := s.ListPlayers()
	if list[0].FullName != "Tim Duncan" || list[1].FullName != "Manu Ginobili" {
		t.Fatalf("expected load order to be preserved, got %+v", list)
	}

	p, ok := s.GetPlayer("  manu   GINOBILI ")
	if !ok {
		t.Fatalf("expected case-insensitive lookup to succeed")
	}
	if p.ValueScore != 300 {
		t.Fatalf("unexpected value score %v", p.ValueScore)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore(nil)
	if _, ok := s.GetPlayer("missing"); ok {
		t.Fatalf("expected missing name to return false")
	}
	if list := s.ListPlayers(); list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", list)
	}
}

func TestMemoryStoreFirstDuplicateWins(t *testing.T) {
	s := NewMemoryStore([]players.Valued{
		valued("Isaiah", "Thomas", 10),
		valued("Isaiah", "Thomas", 20),
	})
	p, _ := s.GetPlayer("Isaiah Thomas")
	if p.ValueScore != 10 {
		t.Fatalf("expected first duplicate, got %v", p.ValueScore)
	}
	if s.Len() != 2 {
		t.Fatalf("expected both rows kept in the table")
	}
}

func TestMemoryStoreIsolatedFromCallers(t *testing.T) {
	input := []players.Valued{valued("Tim", "Duncan", 600)}
	s := NewMemoryStore(input)

	input[0].ValueScore = 0
	list := s.ListPlayers()
	if list[0].ValueScore != 600 {
		t.Fatalf("expected store to copy its input")
	}

	list[0].ValueScore = 1
	if again := s.ListPlayers(); again[0].ValueScore != 600 {
		t.Fatalf("expected list to return a copy")
	}
}
