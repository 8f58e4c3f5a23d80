package cards

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// DefaultKinds is the kind enumeration in display order.
var DefaultKinds = []Kind{"Artist", "Song", "Stage", "Event"}

// DefaultTypes is the type enumeration in display order.
var DefaultTypes = []Type{
	"Pop", "Rock", "Jazz", "HipHop", "Electronic",
	"Classical", "Folk", "Metal", "Soul",
}

// Ordering holds the kind and type enumerations and derives the canonical
// display order from them. Unknown kinds, and cards without a known type,
// sort after everything known.
type Ordering struct {
	kinds    []Kind
	types    []Type
	kindRank map[Kind]int
	typeRank map[Type]int
}

// NewOrdering builds an Ordering from the given enumerations. Both lists
// must be non-empty and free of duplicates.
func NewOrdering(kinds []Kind, types []Type) (Ordering, error) {
	if len(kinds) == 0 {
		return Ordering{}, fmt.Errorf("ordering: no kinds")
	}
	if len(types) == 0 {
		return Ordering{}, fmt.Errorf("ordering: no types")
	}
	o := Ordering{
		kinds:    slices.Clone(kinds),
		types:    slices.Clone(types),
		kindRank: make(map[Kind]int, len(kinds)),
		typeRank: make(map[Type]int, len(types)),
	}
	for i, k := range kinds {
		if _, dup := o.kindRank[k]; dup || k == "" {
			return Ordering{}, fmt.Errorf("ordering: invalid or duplicate kind %q", k)
		}
		o.kindRank[k] = i
	}
	for i, t := range types {
		if _, dup := o.typeRank[t]; dup || t == "" {
			return Ordering{}, fmt.Errorf("ordering: invalid or duplicate type %q", t)
		}
		o.typeRank[t] = i
	}
	return o, nil
}

// DefaultOrdering returns the Ordering over DefaultKinds and DefaultTypes.
func DefaultOrdering() Ordering {
	o, err := NewOrdering(DefaultKinds, DefaultTypes)
	if err != nil {
		panic(err)
	}
	return o
}

func (o Ordering) Kinds() []Kind { return slices.Clone(o.kinds) }
func (o Ordering) Types() []Type { return slices.Clone(o.types) }

func (o Ordering) KnownKind(k Kind) bool {
	_, ok := o.kindRank[k]
	return ok
}

func (o Ordering) KnownType(t Type) bool {
	_, ok := o.typeRank[t]
	return ok
}

func (o Ordering) kindIndex(k Kind) int {
	if i, ok := o.kindRank[k]; ok {
		return i
	}
	return len(o.kinds)
}

// typeIndex is the rank of the earliest known type in ts.
func (o Ordering) typeIndex(ts []Type) int {
	best := len(o.types)
	for _, t := range ts {
		if i, ok := o.typeRank[t]; ok && i < best {
			best = i
		}
	}
	return best
}

func (o Ordering) CompareKind(a, b Kind) int {
	return cmp.Compare(o.kindIndex(a), o.kindIndex(b))
}

func (o Ordering) CompareTypes(a, b []Type) int {
	return cmp.Compare(o.typeIndex(a), o.typeIndex(b))
}

// Compare is the canonical display comparator: kind, then type, then
// natural id order. It is used for both the card pool and the deck.
func (o Ordering) Compare(a, b Card) int {
	if c := o.CompareKind(a.Kind, b.Kind); c != 0 {
		return c
	}
	if c := o.CompareTypes(a.Types, b.Types); c != 0 {
		return c
	}
	return CompareIDs(a.ID, b.ID)
}

// Sort orders cards in place using Compare. The sort is stable.
func (o Ordering) Sort(cs []Card) {
	slices.SortStableFunc(cs, o.Compare)
}

type token struct {
	text    string
	numeric bool
}

func tokenize(id string) []token {
	var out []token
	start := 0
	for i := 1; i <= len(id); i++ {
		if i < len(id) && isDigit(id[i]) == isDigit(id[start]) {
			continue
		}
		out = append(out, token{text: id[start:i], numeric: isDigit(id[start])})
		start = i
	}
	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// CompareIDs compares two card ids in natural order: digit runs compare
// numerically, so "AA-2" sorts before "AA-10".
func CompareIDs(a, b string) int {
	ta, tb := tokenize(a), tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return strings.Compare(a, b)
	}
	for i := 0; i < len(ta) && i < len(tb); i++ {
		var c int
		if ta[i].numeric && tb[i].numeric {
			c = compareNumeric(ta[i].text, tb[i].text)
		} else {
			// Ids are ASCII, so byte order already puts
			// uppercase-leading runs before lowercase-leading ones.
			c = strings.Compare(ta[i].text, tb[i].text)
		}
		if c != 0 {
			return c
		}
	}
	if c := cmp.Compare(len(ta), len(tb)); c != 0 {
		return c
	}
	// "A-01" and "A-1" tie on tokens; keep the order total.
	return strings.Compare(a, b)
}

// compareNumeric compares two digit strings of any length by value.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
