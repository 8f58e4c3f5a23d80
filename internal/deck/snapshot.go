package deck

// SnapshotEntry is the persisted form of an Entry: the card is stored by id.
type SnapshotEntry struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Snapshot is the plain, serialisable state of a deck.
type Snapshot struct {
	Name    string          `json:"name"`
	Entries []SnapshotEntry `json:"entries"`
}

// SnapshotEntries converts entries to their persisted form.
func SnapshotEntries(entries []Entry) []SnapshotEntry {
	out := make([]SnapshotEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, SnapshotEntry{ID: e.Card.ID, Count: e.Count})
	}
	return out
}

// Snapshot captures the current name and entries.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Name: s.name, Entries: SnapshotEntries(s.entries)}
}

// Restore loads snap into the store. Ids unknown to lookup are dropped and
// counts are clamped like an imported code. It returns the number of
// entries that could not be resolved.
func (s *Store) Restore(snap Snapshot, lookup Lookup) int {
	entries := make([]Entry, 0, len(snap.Entries))
	missing := 0
	for _, se := range snap.Entries {
		card, ok := lookup(se.ID)
		if !ok {
			missing++
			continue
		}
		entries = append(entries, Entry{Card: card, Count: se.Count})
	}
	s.Replace(entries)
	s.SetName(snap.Name)
	return missing
}
