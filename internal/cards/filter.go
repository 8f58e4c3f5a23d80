package cards

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Criteria selects cards from the catalog. Categories combine with AND,
// values inside one category with OR. An empty category does not restrict.
type Criteria struct {
	Text  string   `json:"text"`
	Kinds []Kind   `json:"kinds"`
	Types []Type   `json:"types"`
	Tags  []string `json:"tags"`
}

// Key is a canonical form of the criteria, equal for criteria that select
// the same cards regardless of value order. Every value is length-prefixed
// so distinct criteria never share a key.
func (c Criteria) Key() string {
	kinds := make([]string, len(c.Kinds))
	for i, k := range c.Kinds {
		kinds[i] = string(k)
	}
	types := make([]string, len(c.Types))
	for i, t := range c.Types {
		types[i] = string(t)
	}
	tags := slices.Clone(c.Tags)

	var b strings.Builder
	writeKeyPart(&b, []string{strings.TrimSpace(c.Text)})
	for _, vs := range [][]string{kinds, types, tags} {
		slices.Sort(vs)
		writeKeyPart(&b, slices.Compact(vs))
	}
	return b.String()
}

func writeKeyPart(b *strings.Builder, values []string) {
	b.WriteString(strconv.Itoa(len(values)))
	b.WriteByte('[')
	for _, v := range values {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	b.WriteByte(']')
}

// Matcher is a compiled Criteria.
type Matcher struct {
	fold  cases.Caser
	text  string
	kinds map[Kind]struct{}
	types map[Type]struct{}
	tags  map[string]struct{}
}

// Compile folds the search text and builds the lookup sets once so that
// matching a whole catalog stays linear.
func (c Criteria) Compile() *Matcher {
	m := &Matcher{fold: cases.Fold()}
	if t := strings.TrimSpace(c.Text); t != "" {
		m.text = m.fold.String(t)
	}
	if len(c.Kinds) > 0 {
		m.kinds = make(map[Kind]struct{}, len(c.Kinds))
		for _, k := range c.Kinds {
			m.kinds[k] = struct{}{}
		}
	}
	if len(c.Types) > 0 {
		m.types = make(map[Type]struct{}, len(c.Types))
		for _, t := range c.Types {
			m.types[t] = struct{}{}
		}
	}
	if len(c.Tags) > 0 {
		m.tags = make(map[string]struct{}, len(c.Tags))
		for _, t := range c.Tags {
			m.tags[t] = struct{}{}
		}
	}
	return m
}

func (m *Matcher) Match(c Card) bool {
	if m.kinds != nil {
		if _, ok := m.kinds[c.Kind]; !ok {
			return false
		}
	}
	if m.types != nil && !anyType(c.Types, m.types) {
		return false
	}
	if m.tags != nil && !anyTag(c.Tags, m.tags) {
		return false
	}
	if m.text != "" && !m.matchText(c) {
		return false
	}
	return true
}

func (m *Matcher) matchText(c Card) bool {
	if m.contains(c.Name) || m.contains(c.ID) {
		return true
	}
	for _, tag := range c.Tags {
		if m.contains(tag) {
			return true
		}
	}
	return false
}

func (m *Matcher) contains(s string) bool {
	return strings.Contains(m.fold.String(s), m.text)
}

func anyType(ts []Type, set map[Type]struct{}) bool {
	for _, t := range ts {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

func anyTag(tags []string, set map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// Matches reports whether card satisfies criteria.
func Matches(card Card, criteria Criteria) bool {
	return criteria.Compile().Match(card)
}

// Filter returns the cards matching opt, preserving input order. The input
// slice is not modified.
func Filter(cards []Card, opt Criteria) []Card {
	m := opt.Compile()
	out := []Card{}
	for _, c := range cards {
		if m.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
