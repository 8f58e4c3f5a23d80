package cards

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
)

// IDDelimiter separates ids in a deck code; catalog ids must not contain it.
const IDDelimiter = "/"

var catalogVersion atomic.Uint64

// Catalog is the immutable, validated card pool.
type Catalog struct {
	cards   []Card
	byID    map[string]int
	version uint64
}

// NewCatalog validates cards against ord and indexes them by id. Invalid
// entries and repeated ids are skipped and logged; the first occurrence of
// an id wins.
func NewCatalog(cs []Card, ord Ordering) (*Catalog, error) {
	c := &Catalog{
		byID:    make(map[string]int, len(cs)),
		version: catalogVersion.Add(1),
	}
	for i, card := range cs {
		if err := Validate(card, ord); err != nil {
			slog.Warn("skipping catalog entry", "index", i, "id", card.ID, "error", err)
			continue
		}
		if _, dup := c.byID[card.ID]; dup {
			slog.Warn("skipping duplicate catalog id", "index", i, "id", card.ID)
			continue
		}
		card.Types = slices.Clone(card.Types)
		card.Tags = slices.Clone(card.Tags)
		c.byID[card.ID] = len(c.cards)
		c.cards = append(c.cards, card)
	}
	if len(c.cards) == 0 {
		return nil, fmt.Errorf("catalog has no valid cards (%d entries read)", len(cs))
	}
	return c, nil
}

// Validate checks a single entry against the catalog schema.
func Validate(card Card, ord Ordering) error {
	switch {
	case strings.TrimSpace(card.ID) == "":
		return fmt.Errorf("missing id")
	case strings.Contains(card.ID, IDDelimiter):
		return fmt.Errorf("id %q contains %q", card.ID, IDDelimiter)
	case !isPrintableASCII(card.ID):
		return fmt.Errorf("id %q is not printable ASCII", card.ID)
	case strings.TrimSpace(card.Name) == "":
		return fmt.Errorf("missing name")
	case card.Kind == "":
		return fmt.Errorf("missing kind")
	case !ord.KnownKind(card.Kind):
		return fmt.Errorf("unknown kind %q", card.Kind)
	case len(card.Types) == 0:
		return fmt.Errorf("missing type")
	}
	for _, t := range card.Types {
		if !ord.KnownType(t) {
			return fmt.Errorf("unknown type %q", t)
		}
	}
	return nil
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// Lookup returns the card with the given id.
func (c *Catalog) Lookup(id string) (Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// Cards returns a copy of the catalog in source order.
func (c *Catalog) Cards() []Card {
	return slices.Clone(c.cards)
}

func (c *Catalog) Len() int { return len(c.cards) }

// Version identifies this catalog instance for memoised views.
func (c *Catalog) Version() uint64 { return c.version }
