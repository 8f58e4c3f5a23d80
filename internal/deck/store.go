package deck

import (
	"fmt"
	"slices"

	"github.com/youruser/deckbuilder/internal/cards"
)

// Store holds the authoritative deck state. All mutations keep the size
// invariants: every count in [1, MaxCopies] and the total at most MaxCards.
// Store is not safe for concurrent use.
type Store struct {
	defaultName string
	name        string
	entries     []Entry
	total       int
	version     uint64
}

// NewStore returns an empty deck named defaultName, or DefaultName when
// defaultName is empty.
func NewStore(defaultName string) *Store {
	if defaultName == "" {
		defaultName = DefaultName
	}
	return &Store{defaultName: defaultName, name: defaultName}
}

func (s *Store) find(id string) int {
	for i := range s.entries {
		if s.entries[i].Card.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) bump() { s.version++ }

// Add puts one copy of card in the deck. It returns ErrDeckFull when the
// deck holds MaxCards cards. A card already at MaxCopies is left as is.
func (s *Store) Add(card cards.Card) error {
	if s.total >= MaxCards {
		return ErrDeckFull
	}
	if i := s.find(card.ID); i >= 0 {
		return s.increment(i)
	}
	s.entries = append(s.entries, Entry{Card: card, Count: 1})
	s.total++
	s.bump()
	return nil
}

// Increment adds a copy of a card already in the deck, with the same
// limits as Add. Unknown ids are ignored.
func (s *Store) Increment(id string) error {
	i := s.find(id)
	if i < 0 {
		return nil
	}
	if s.total >= MaxCards {
		return ErrDeckFull
	}
	return s.increment(i)
}

func (s *Store) increment(i int) error {
	if s.entries[i].Count >= MaxCopies {
		return nil
	}
	s.entries[i].Count++
	s.total++
	s.bump()
	return nil
}

// Decrement removes one copy; the entry disappears with its last copy.
func (s *Store) Decrement(id string) {
	i := s.find(id)
	if i < 0 {
		return
	}
	s.entries[i].Count--
	s.total--
	if s.entries[i].Count == 0 {
		s.entries = slices.Delete(s.entries, i, i+1)
	}
	s.bump()
}

// Remove drops every copy of the card.
func (s *Store) Remove(id string) {
	i := s.find(id)
	if i < 0 {
		return
	}
	s.total -= s.entries[i].Count
	s.entries = slices.Delete(s.entries, i, i+1)
	s.bump()
}

// Reset empties the deck and restores the default name.
func (s *Store) Reset() {
	s.entries = nil
	s.total = 0
	s.name = s.defaultName
	s.bump()
}

// SetName renames the deck. An empty name restores the default.
func (s *Store) SetName(name string) {
	if name == "" {
		name = s.defaultName
	}
	if name == s.name {
		return
	}
	s.name = name
	s.bump()
}

// Replace swaps the deck contents for entries, clamped to the deck limits.
// The name is kept. It returns the number of copies dropped by clamping.
func (s *Store) Replace(entries []Entry) int {
	clamped := Clamp(entries)
	s.entries = clamped
	s.total = Total(clamped)
	s.bump()
	return Total(entries) - s.total
}

func (s *Store) Name() string { return s.name }

func (s *Store) DefaultName() string { return s.defaultName }

// Entries returns a copy of the entries in insertion order.
func (s *Store) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Count returns the copies of id in the deck, 0 when absent.
func (s *Store) Count(id string) int {
	if i := s.find(id); i >= 0 {
		return s.entries[i].Count
	}
	return 0
}

func (s *Store) Total() int { return s.total }

// Version changes on every mutation.
func (s *Store) Version() uint64 { return s.version }

// Validate checks the deck invariants.
func (s *Store) Validate() error {
	seen := make(map[string]bool, len(s.entries))
	sum := 0
	for _, e := range s.entries {
		if seen[e.Card.ID] {
			return fmt.Errorf("deck: card %s appears twice", e.Card.ID)
		}
		seen[e.Card.ID] = true
		if e.Count < 1 || e.Count > MaxCopies {
			return fmt.Errorf("deck: card %s has count %d", e.Card.ID, e.Count)
		}
		sum += e.Count
	}
	if sum != s.total {
		return fmt.Errorf("deck: total %d does not match entries (%d)", s.total, sum)
	}
	if sum > MaxCards {
		return fmt.Errorf("deck: %d cards exceeds %d", sum, MaxCards)
	}
	return nil
}
