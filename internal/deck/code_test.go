package deck

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/youruser/deckbuilder/internal/cards"
)

func catalogLookup(known ...string) Lookup {
	set := map[string]bool{}
	for _, id := range known {
		set[id] = true
	}
	return func(id string) (cards.Card, bool) {
		if !set[id] {
			return cards.Card{}, false
		}
		return card(id), true
	}
}

func counts(entries []Entry) map[string]int {
	out := map[string]int{}
	for _, e := range entries {
		out[e.Card.ID] += e.Count
	}
	return out
}

func TestDecodeCode(t *testing.T) {
	got := DecodeCode("X-1/X-1/Y-2", catalogLookup("X-1", "Y-2"))
	if len(got) != 2 {
		t.Fatalf("entries = %+v", got)
	}
	if got[0].Card.ID != "X-1" || got[0].Count != 2 || got[1].Card.ID != "Y-2" || got[1].Count != 1 {
		t.Fatalf("entries = %+v, want X-1:2 Y-2:1", got)
	}
}

func TestDecodeCodeUnknownIsEmpty(t *testing.T) {
	if got := DecodeCode("Z-9", catalogLookup("X-1")); len(got) != 0 {
		t.Fatalf("entries = %+v, want none", got)
	}
	if got := DecodeCode("", catalogLookup("X-1")); len(got) != 0 {
		t.Fatalf("empty code decoded to %+v", got)
	}
}

func TestDecodeCodeToleratesWhitespace(t *testing.T) {
	got := DecodeCode(" X-1 / X-1/\nY-2/", catalogLookup("X-1", "Y-2"))
	c := counts(got)
	if c["X-1"] != 2 || c["Y-2"] != 1 || len(c) != 2 {
		t.Fatalf("counts = %v", c)
	}
}

func TestDecodeDoesNotClamp(t *testing.T) {
	got := DecodeCode("A/A/A/A/A/A", catalogLookup("A"))
	if len(got) != 1 || got[0].Count != 6 {
		t.Fatalf("entries = %+v, want A:6", got)
	}
	clamped := Clamp(got)
	if clamped[0].Count != MaxCopies {
		t.Fatalf("clamped count = %d, want %d", clamped[0].Count, MaxCopies)
	}
}

func TestEncodeCode(t *testing.T) {
	code := EncodeCode([]Entry{{Card: card("A-1"), Count: 2}, {Card: card("B-1"), Count: 1}})
	if code != "A-1/A-1/B-1" {
		t.Fatalf("code = %q", code)
	}
	if EncodeCode(nil) != "" {
		t.Fatal("empty deck should encode to an empty code")
	}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	var known []string
	for i := 0; i < 40; i++ {
		known = append(known, fmt.Sprintf("ID-%d", i))
	}
	lookup := catalogLookup(known...)

	for iter := 0; iter < 200; iter++ {
		s := NewStore("")
		for n := r.IntN(80); n > 0; n-- {
			s.Add(card(known[r.IntN(len(known))]))
		}
		entries := s.Entries()
		// Order must not matter.
		r.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })

		decoded := DecodeCode(EncodeCode(entries), lookup)
		want, got := counts(entries), counts(decoded)
		if len(want) != len(got) {
			t.Fatalf("iter %d: got %v, want %v", iter, got, want)
		}
		for id, n := range want {
			if got[id] != n {
				t.Fatalf("iter %d: %s = %d, want %d", iter, id, got[id], n)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	var in []Entry
	for i := 0; i < 20; i++ {
		in = append(in, Entry{Card: card(fmt.Sprintf("C-%d", i)), Count: 4})
	}
	in = append([]Entry{{Card: card("C-0"), Count: 0}, {Card: card("DUP"), Count: 3}, {Card: card("DUP"), Count: 3}}, in...)

	out := Clamp(in)
	if Total(out) != MaxCards {
		t.Fatalf("total = %d, want %d", Total(out), MaxCards)
	}
	c := counts(out)
	if c["DUP"] != 4 {
		t.Errorf("merged DUP = %d, want 4", c["DUP"])
	}
	for _, e := range out {
		if e.Count < 1 || e.Count > MaxCopies {
			t.Fatalf("entry %s has count %d", e.Card.ID, e.Count)
		}
	}
	// 4 (DUP) + 14*4 = 60: C-0..C-13 fit, C-14.. are dropped.
	if _, ok := c["C-13"]; !ok {
		t.Error("C-13 should fit")
	}
	if _, ok := c["C-14"]; ok {
		t.Error("C-14 should have been dropped")
	}
}

func TestExportText(t *testing.T) {
	got := ExportText("Night Set", []Entry{{Card: card("A-1"), Count: 3}, {Card: card("B-2"), Count: 1}})
	want := "# Night Set\n3xA-1\n1xB-2"
	if got != want {
		t.Fatalf("ExportText = %q, want %q", got, want)
	}
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{Card: cards.Card{ID: "S-10", Kind: "Song", Types: cards.TypeList{"Pop"}}, Count: 1},
		{Card: cards.Card{ID: "A-1", Kind: "Artist", Types: cards.TypeList{"Rock"}}, Count: 1},
		{Card: cards.Card{ID: "S-2", Kind: "Song", Types: cards.TypeList{"Pop"}}, Count: 1},
	}
	SortEntries(entries, cards.DefaultOrdering())
	got := []string{entries[0].Card.ID, entries[1].Card.ID, entries[2].Card.ID}
	want := []string{"A-1", "S-2", "S-10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
