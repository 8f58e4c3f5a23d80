package deck

import (
	"slices"

	"github.com/youruser/deckbuilder/internal/cards"
)

const (
	// MaxCards is the deck size limit.
	MaxCards = 60
	// MaxCopies is the per-card limit.
	MaxCopies = 4
	// DefaultName is used until the user names the deck.
	DefaultName = "Untitled Deck"
)

// Entry pairs a card with its number of copies in the deck.
type Entry struct {
	Card  cards.Card `json:"card"`
	Count int        `json:"count"`
}

// Lookup resolves a card id against the catalog.
type Lookup func(id string) (cards.Card, bool)

// SortEntries orders entries by the canonical card order.
func SortEntries(entries []Entry, ord cards.Ordering) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return ord.Compare(a.Card, b.Card)
	})
}

// Total sums the counts of entries.
func Total(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Count
	}
	return n
}
