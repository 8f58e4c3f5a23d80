package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/youruser/deckbuilder/internal/cards"
)

func card(id string) cards.Card {
	return cards.Card{ID: id, Name: id, Kind: "Song", Types: cards.TypeList{"Pop"}}
}

// fillDeck adds MaxCards cards spread over 15 ids.
func fillDeck(t *testing.T, s *Store) {
	t.Helper()
	for i := 0; i < MaxCards/MaxCopies; i++ {
		for j := 0; j < MaxCopies; j++ {
			if err := s.Add(card(fmt.Sprintf("C-%d", i))); err != nil {
				t.Fatalf("Add: %v", err)
			}
		}
	}
	if s.Total() != MaxCards {
		t.Fatalf("total = %d, want %d", s.Total(), MaxCards)
	}
}

func TestAddCapsPerCard(t *testing.T) {
	s := NewStore("")
	for i := 0; i < 5; i++ {
		if err := s.Add(card("A-1")); err != nil {
			t.Fatalf("Add #%d: %v", i+1, err)
		}
	}
	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Count != MaxCopies {
		t.Fatalf("count = %d, want %d", entries[0].Count, MaxCopies)
	}
}

func TestAddFifthCopyIsNoOp(t *testing.T) {
	s := NewStore("")
	for i := 0; i < 4; i++ {
		s.Add(card("A-1"))
	}
	v := s.Version()
	if err := s.Add(card("A-1")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if s.Version() != v {
		t.Fatal("5th Add changed the deck")
	}
}

func TestAddRejectsWhenFull(t *testing.T) {
	s := NewStore("")
	fillDeck(t, s)
	v := s.Version()
	if err := s.Add(card("NEW-1")); !errors.Is(err, ErrDeckFull) {
		t.Fatalf("Add on full deck: err = %v, want ErrDeckFull", err)
	}
	if s.Count("NEW-1") != 0 || s.Version() != v {
		t.Fatal("full deck was modified")
	}
}

func TestIncrement(t *testing.T) {
	s := NewStore("")
	if err := s.Increment("missing"); err != nil {
		t.Fatalf("Increment on absent card: %v", err)
	}
	if s.Total() != 0 {
		t.Fatal("Increment on absent card added it")
	}

	s.Add(card("A-1"))
	s.Increment("A-1")
	if s.Count("A-1") != 2 {
		t.Fatalf("count = %d, want 2", s.Count("A-1"))
	}
	for i := 0; i < 5; i++ {
		s.Increment("A-1")
	}
	if s.Count("A-1") != MaxCopies {
		t.Fatalf("count = %d, want %d", s.Count("A-1"), MaxCopies)
	}
}

func TestIncrementRejectsWhenFull(t *testing.T) {
	s := NewStore("")
	fillDeck(t, s)
	s.Decrement("C-0")
	s.Add(card("A-1"))
	if err := s.Increment("A-1"); !errors.Is(err, ErrDeckFull) {
		t.Fatalf("err = %v, want ErrDeckFull", err)
	}
}

func TestDecrementRemovesLastCopy(t *testing.T) {
	s := NewStore("")
	s.Add(card("A-1"))
	s.Add(card("A-1"))
	s.Decrement("A-1")
	if s.Count("A-1") != 1 {
		t.Fatalf("count = %d, want 1", s.Count("A-1"))
	}
	s.Decrement("A-1")
	if len(s.Entries()) != 0 {
		t.Fatalf("entry not removed at zero: %+v", s.Entries())
	}
	s.Decrement("A-1")
	if s.Total() != 0 {
		t.Fatal("Decrement on absent card changed total")
	}
}

func TestRemove(t *testing.T) {
	s := NewStore("")
	s.Add(card("A-1"))
	s.Add(card("A-1"))
	s.Add(card("B-1"))
	s.Remove("A-1")
	if s.Count("A-1") != 0 || s.Total() != 1 {
		t.Fatalf("after Remove: A-1=%d total=%d", s.Count("A-1"), s.Total())
	}
	s.Remove("A-1")
	if s.Total() != 1 {
		t.Fatal("Remove on absent card changed total")
	}
}

func TestResetAndName(t *testing.T) {
	s := NewStore("Starter")
	if s.Name() != "Starter" {
		t.Fatalf("name = %q, want Starter", s.Name())
	}
	s.SetName("ロックの夜 🎸")
	if s.Name() != "ロックの夜 🎸" {
		t.Fatalf("unicode name not kept: %q", s.Name())
	}
	s.SetName("")
	if s.Name() != "Starter" {
		t.Fatalf("empty name should restore default, got %q", s.Name())
	}

	s.SetName("Mine")
	s.Add(card("A-1"))
	s.Reset()
	if s.Total() != 0 || len(s.Entries()) != 0 || s.Name() != "Starter" {
		t.Fatalf("after Reset: total=%d entries=%d name=%q", s.Total(), len(s.Entries()), s.Name())
	}
	if NewStore("").Name() != DefaultName {
		t.Fatal("empty default should fall back to DefaultName")
	}
}

func TestInvariantsUnderRandomOperations(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	s := NewStore("")
	for i := 0; i < 5000; i++ {
		id := fmt.Sprintf("C-%d", r.IntN(25))
		switch r.IntN(5) {
		case 0, 1:
			err := s.Add(card(id))
			if err != nil && !errors.Is(err, ErrDeckFull) {
				t.Fatalf("Add: %v", err)
			}
		case 2:
			s.Increment(id)
		case 3:
			s.Decrement(id)
		case 4:
			if r.IntN(10) == 0 {
				s.Remove(id)
			}
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestReplaceClamps(t *testing.T) {
	s := NewStore("")
	s.SetName("Keep")
	dropped := s.Replace([]Entry{{Card: card("A-1"), Count: 9}, {Card: card("B-1"), Count: 2}})
	if dropped != 5 {
		t.Fatalf("dropped = %d, want 5", dropped)
	}
	if s.Count("A-1") != 4 || s.Count("B-1") != 2 || s.Name() != "Keep" {
		t.Fatalf("after Replace: A-1=%d B-1=%d name=%q", s.Count("A-1"), s.Count("B-1"), s.Name())
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := NewStore("")
	s.SetName("Saved")
	s.Add(card("A-1"))
	s.Add(card("A-1"))
	s.Add(card("B-1"))
	snap := s.Snapshot()
	snap.Entries = append(snap.Entries, SnapshotEntry{ID: "GONE-1", Count: 3})

	lookup := func(id string) (cards.Card, bool) {
		if id == "GONE-1" {
			return cards.Card{}, false
		}
		return card(id), true
	}
	r := NewStore("")
	missing := r.Restore(snap, lookup)
	if missing != 1 {
		t.Fatalf("missing = %d, want 1", missing)
	}
	if r.Name() != "Saved" || r.Count("A-1") != 2 || r.Count("B-1") != 1 || r.Total() != 3 {
		t.Fatalf("restored: name=%q A-1=%d B-1=%d total=%d", r.Name(), r.Count("A-1"), r.Count("B-1"), r.Total())
	}
}
