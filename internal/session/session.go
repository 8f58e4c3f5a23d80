// Package session owns the single active deck together with the catalog
// it is built from. A Session is not safe for concurrent use; callers that
// serve several goroutines serialise access themselves.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/youruser/deckbuilder/internal/cards"
	"github.com/youruser/deckbuilder/internal/deck"
)

var (
	// ErrCatalogUnavailable is returned by every operation after the
	// catalog failed to load.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrUnknownCard is returned when an id is not in the catalog.
	ErrUnknownCard = errors.New("card not found in catalog")
)

// Persister receives snapshot changes. Implementations must not block.
type Persister interface {
	SaveEntries(entries []deck.SnapshotEntry)
	SaveName(name string)
	Clear()
}

// SnapshotSource yields the snapshot saved by a previous run.
type SnapshotSource interface {
	Load(ctx context.Context) (deck.Snapshot, error)
}

type Options struct {
	Ordering    cards.Ordering
	DefaultName string
	Persister   Persister
}

type nopPersister struct{}

func (nopPersister) SaveEntries([]deck.SnapshotEntry) {}
func (nopPersister) SaveName(string)                  {}
func (nopPersister) Clear()                           {}

// View is the deck as displayed: entries in canonical order.
type View struct {
	Name    string       `json:"name"`
	Entries []deck.Entry `json:"entries"`
	Total   int          `json:"total"`
}

// Status summarises availability for the presentation layer.
type Status struct {
	Available     bool   `json:"available"`
	CatalogError  string `json:"catalog_error,omitempty"`
	RestoreError  string `json:"restore_error,omitempty"`
	CatalogSize   int    `json:"catalog_size"`
	DeckTotal     int    `json:"deck_total"`
	DeckName      string `json:"deck_name"`
	DroppedOnLoad int    `json:"dropped_on_load,omitempty"`
}

type poolCache struct {
	catalog uint64
	key     string
	cards   []cards.Card
	valid   bool
}

type viewCache struct {
	version uint64
	view    View
	valid   bool
}

type Session struct {
	catalog    *cards.Catalog
	catalogErr error
	ord        cards.Ordering
	store      *deck.Store
	persist    Persister

	restoreErr error
	dropped    int
	// staleName is set when the stored name may not belong to the deck
	// held in memory; the next save writes the name too.
	staleName bool

	pool poolCache
	view viewCache
}

// New starts a session over a loaded catalog with an empty deck.
func New(catalog *cards.Catalog, opts Options) *Session {
	s := &Session{
		catalog: catalog,
		ord:     opts.Ordering,
		store:   deck.NewStore(opts.DefaultName),
		persist: opts.Persister,
	}
	if s.persist == nil {
		s.persist = nopPersister{}
	}
	return s
}

// Unavailable returns a degraded session after a catalog load failure.
func Unavailable(loadErr error, opts Options) *Session {
	s := New(nil, opts)
	s.catalogErr = loadErr
	return s
}

func (s *Session) ready() error {
	if s.catalog != nil {
		return nil
	}
	if s.catalogErr != nil {
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, s.catalogErr)
	}
	return ErrCatalogUnavailable
}

// Restore loads the previously saved deck. Ids missing from the catalog
// are dropped. When the source fails the deck stays empty and the error is
// returned once for reporting; the session remains usable.
func (s *Session) Restore(ctx context.Context, src SnapshotSource) error {
	if err := s.ready(); err != nil {
		return err
	}
	snap, err := src.Load(ctx)
	if err != nil {
		s.restoreErr = err
		s.store.Reset()
		s.staleName = true
		return err
	}
	s.dropped = s.store.Restore(snap, s.catalog.Lookup)
	if s.dropped > 0 {
		slog.Warn("dropped saved cards missing from catalog", "count", s.dropped)
	}
	return nil
}

func (s *Session) Status() Status {
	st := Status{
		Available:     s.catalog != nil,
		DeckTotal:     s.store.Total(),
		DeckName:      s.store.Name(),
		DroppedOnLoad: s.dropped,
	}
	if s.catalog != nil {
		st.CatalogSize = s.catalog.Len()
	}
	if s.catalogErr != nil {
		st.CatalogError = s.catalogErr.Error()
	}
	if s.restoreErr != nil {
		st.RestoreError = s.restoreErr.Error()
	}
	return st
}

func (s *Session) Ordering() cards.Ordering { return s.ord }

// Pool returns the catalog cards matching criteria in canonical order.
// The result is shared with later calls using equivalent criteria; callers
// must not modify it.
func (s *Session) Pool(criteria cards.Criteria) ([]cards.Card, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	key := criteria.Key()
	if s.pool.valid && s.pool.catalog == s.catalog.Version() && s.pool.key == key {
		return s.pool.cards, nil
	}
	out := cards.Filter(s.catalog.Cards(), criteria)
	s.ord.Sort(out)
	s.pool = poolCache{catalog: s.catalog.Version(), key: key, cards: out, valid: true}
	return out, nil
}

// Deck returns the deck in canonical order.
func (s *Session) Deck() (View, error) {
	if err := s.ready(); err != nil {
		return View{}, err
	}
	if s.view.valid && s.view.version == s.store.Version() {
		return s.view.view, nil
	}
	entries := s.store.Entries()
	deck.SortEntries(entries, s.ord)
	v := View{Name: s.store.Name(), Entries: entries, Total: s.store.Total()}
	s.view = viewCache{version: s.store.Version(), view: v, valid: true}
	return v, nil
}

func (s *Session) saveEntries() {
	s.persist.SaveEntries(deck.SnapshotEntries(s.store.Entries()))
	if s.staleName {
		s.persist.SaveName(s.store.Name())
		s.staleName = false
	}
}

// mutate runs fn and persists the entries if the deck changed.
func (s *Session) mutate(fn func() error) error {
	if err := s.ready(); err != nil {
		return err
	}
	before := s.store.Version()
	if err := fn(); err != nil {
		return err
	}
	if s.store.Version() != before {
		s.saveEntries()
	}
	return nil
}

// AddCard adds one copy of the catalog card id.
func (s *Session) AddCard(id string) error {
	return s.mutate(func() error {
		card, ok := s.catalog.Lookup(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCard, id)
		}
		return s.store.Add(card)
	})
}

func (s *Session) Increment(id string) error {
	return s.mutate(func() error { return s.store.Increment(id) })
}

func (s *Session) Decrement(id string) error {
	return s.mutate(func() error {
		s.store.Decrement(id)
		return nil
	})
}

func (s *Session) Remove(id string) error {
	return s.mutate(func() error {
		s.store.Remove(id)
		return nil
	})
}

// Reset empties the deck and discards the saved snapshot. Callers gate it
// behind user confirmation.
func (s *Session) Reset() error {
	if err := s.ready(); err != nil {
		return err
	}
	s.store.Reset()
	s.dropped = 0
	s.staleName = false
	s.persist.Clear()
	return nil
}

func (s *Session) SetName(name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	before := s.store.Version()
	s.store.SetName(name)
	if s.store.Version() != before {
		s.persist.SaveName(s.store.Name())
		s.staleName = false
	}
	return nil
}

// Code returns the deck code in canonical order.
func (s *Session) Code() (string, error) {
	v, err := s.Deck()
	if err != nil {
		return "", err
	}
	return deck.EncodeCode(v.Entries), nil
}

// ImportResult describes an accepted deck code.
type ImportResult struct {
	Cards   int `json:"cards"`
	Entries int `json:"entries"`
	Clamped int `json:"clamped"`
}

// Import replaces the deck contents with the cards in code, keeping the
// name. Counts over the deck limits are clamped. A code without any known
// card returns deck.ErrEmptyCode and leaves the deck untouched.
func (s *Session) Import(code string) (ImportResult, error) {
	if err := s.ready(); err != nil {
		return ImportResult{}, err
	}
	entries := deck.DecodeCode(code, s.catalog.Lookup)
	if len(entries) == 0 {
		return ImportResult{}, deck.ErrEmptyCode
	}
	clamped := s.store.Replace(entries)
	s.saveEntries()
	if clamped > 0 {
		slog.Info("clamped imported deck code", "dropped", clamped)
	}
	return ImportResult{
		Cards:   s.store.Total(),
		Entries: len(s.store.Entries()),
		Clamped: clamped,
	}, nil
}

// ExportText renders the deck as a readable list.
func (s *Session) ExportText() (string, error) {
	v, err := s.Deck()
	if err != nil {
		return "", err
	}
	return deck.ExportText(v.Name, v.Entries), nil
}

// Entries returns a copy of the current entries in canonical order.
func (s *Session) Entries() ([]deck.Entry, error) {
	v, err := s.Deck()
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.Entries), nil
}
