package deck

import (
	"strings"

	"github.com/youruser/deckbuilder/internal/cards"
)

// EncodeCode writes each card id once per copy, joined by "/". Entry order
// is kept, so the same multiset can produce different codes; decoding
// re-aggregates.
func EncodeCode(entries []Entry) string {
	ids := make([]string, 0, Total(entries))
	for _, e := range entries {
		for i := 0; i < e.Count; i++ {
			ids = append(ids, e.Card.ID)
		}
	}
	return strings.Join(ids, cards.IDDelimiter)
}

// DecodeCode counts the ids in code and returns one entry per id known to
// lookup, in order of first appearance. Unknown ids are dropped. Counts
// are not clamped; see Clamp.
func DecodeCode(code string, lookup Lookup) []Entry {
	var out []Entry
	index := map[string]int{}
	for _, tok := range strings.Split(code, cards.IDDelimiter) {
		id := strings.TrimSpace(tok)
		if id == "" {
			continue
		}
		if i, ok := index[id]; ok {
			out[i].Count++
			continue
		}
		card, ok := lookup(id)
		if !ok {
			continue
		}
		index[id] = len(out)
		out = append(out, Entry{Card: card, Count: 1})
	}
	return out
}

// Clamp merges entries sharing an id, caps each at MaxCopies and stops
// adding once MaxCards is reached. Non-positive counts are dropped.
func Clamp(entries []Entry) []Entry {
	var out []Entry
	index := map[string]int{}
	total := 0
	for _, e := range entries {
		if e.Count <= 0 {
			continue
		}
		i, ok := index[e.Card.ID]
		if !ok {
			i = len(out)
			index[e.Card.ID] = i
			out = append(out, Entry{Card: e.Card})
		}
		n := min(e.Count, MaxCopies-out[i].Count, MaxCards-total)
		if n > 0 {
			out[i].Count += n
			total += n
		}
	}
	// Drop entries that got no copies because the deck was already full.
	kept := out[:0]
	for _, e := range out {
		if e.Count > 0 {
			kept = append(kept, e)
		}
	}
	return kept
}
