package storage

import (
	"context"
	"encoding/json"

	"github.com/youruser/deckbuilder/internal/deck"
)

// Snapshots reads and writes deck snapshots on top of a KV.
type Snapshots struct {
	kv KV
}

func NewSnapshots(kv KV) *Snapshots {
	return &Snapshots{kv: kv}
}

// Load returns the stored snapshot. Missing keys yield zero values; an
// empty name means "use the default".
func (s *Snapshots) Load(ctx context.Context) (deck.Snapshot, error) {
	var snap deck.Snapshot

	raw, ok, err := s.kv.Get(ctx, EntriesKey)
	if err != nil {
		return deck.Snapshot{}, &PersistenceError{Op: "get", Key: EntriesKey, Err: err}
	}
	if ok {
		if err := json.Unmarshal(raw, &snap.Entries); err != nil {
			return deck.Snapshot{}, &PersistenceError{Op: "decode", Key: EntriesKey, Err: err}
		}
	}

	raw, ok, err = s.kv.Get(ctx, NameKey)
	if err != nil {
		return deck.Snapshot{}, &PersistenceError{Op: "get", Key: NameKey, Err: err}
	}
	if ok {
		snap.Name = string(raw)
	}
	return snap, nil
}

func (s *Snapshots) SaveEntries(ctx context.Context, entries []deck.SnapshotEntry) error {
	if entries == nil {
		entries = []deck.SnapshotEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: EntriesKey, Err: err}
	}
	if err := s.kv.Put(ctx, EntriesKey, raw); err != nil {
		return &PersistenceError{Op: "put", Key: EntriesKey, Err: err}
	}
	return nil
}

func (s *Snapshots) SaveName(ctx context.Context, name string) error {
	if err := s.kv.Put(ctx, NameKey, []byte(name)); err != nil {
		return &PersistenceError{Op: "put", Key: NameKey, Err: err}
	}
	return nil
}

// Clear removes both keys.
func (s *Snapshots) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, EntriesKey, NameKey); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	return nil
}
