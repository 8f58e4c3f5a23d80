package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/youruser/deckbuilder/internal/deck"
)

const (
	defaultWriteTimeout  = 5 * time.Second
	defaultRetryInterval = 2 * time.Second
)

// Writer persists snapshots in the background. Calls never block on I/O:
// they record the latest value per key and wake the run loop. A pending
// Clear is applied before any value queued after it.
type Writer struct {
	snaps   *Snapshots
	timeout time.Duration
	retry   time.Duration

	mu      sync.Mutex
	entries []deck.SnapshotEntry
	hasEnt  bool
	name    string
	hasName bool
	clear   bool
	lastErr error

	writeMu sync.Mutex
	failing bool

	wake chan struct{}
}

func NewWriter(snaps *Snapshots) *Writer {
	return &Writer{
		snaps:   snaps,
		timeout: defaultWriteTimeout,
		retry:   defaultRetryInterval,
		wake:    make(chan struct{}, 1),
	}
}

func (w *Writer) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Writer) SaveEntries(entries []deck.SnapshotEntry) {
	w.mu.Lock()
	w.entries = entries
	w.hasEnt = true
	w.mu.Unlock()
	w.signal()
}

func (w *Writer) SaveName(name string) {
	w.mu.Lock()
	w.name = name
	w.hasName = true
	w.mu.Unlock()
	w.signal()
}

// Clear discards anything pending and deletes the stored snapshot.
func (w *Writer) Clear() {
	w.mu.Lock()
	w.entries, w.hasEnt = nil, false
	w.name, w.hasName = "", false
	w.clear = true
	w.mu.Unlock()
	w.signal()
}

// Err returns the most recent write error, nil once a write succeeds.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Run writes pending changes until ctx is done, then flushes what is left.
// Failed writes are retried every retry interval until one succeeds.
// It only returns once ctx is done.
func (w *Writer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.retry)
	defer ticker.Stop()
	for {
		select {
		case <-w.wake:
			w.Flush(ctx)
		case <-ticker.C:
			if w.Err() != nil {
				w.Flush(ctx)
			}
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), w.timeout)
			defer cancel()
			// Failures are already logged; shutdown goes ahead regardless.
			_ = w.Flush(flushCtx)
			return nil
		}
	}
}

// Flush writes everything pending now. Failures are logged once per run
// of consecutive failures and returned; they never reach deck mutations.
func (w *Writer) Flush(ctx context.Context) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	wipe, hasEnt, hasName := w.clear, w.hasEnt, w.hasName
	entries, name := w.entries, w.name
	w.clear, w.hasEnt, w.hasName = false, false, false
	w.entries, w.name = nil, ""
	w.mu.Unlock()

	if !wipe && !hasEnt && !hasName {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	var wipeErr, entErr, nameErr error
	if wipe {
		wipeErr = w.snaps.Clear(ctx)
	}
	if hasEnt {
		entErr = w.snaps.SaveEntries(ctx, entries)
	}
	if hasName {
		nameErr = w.snaps.SaveName(ctx, name)
	}
	err := errors.Join(wipeErr, entErr, nameErr)

	// Keep failed writes pending for the next flush unless newer values
	// have been queued meanwhile.
	w.mu.Lock()
	w.lastErr = err
	newer := w.clear
	if wipeErr != nil {
		w.clear = true
	}
	if entErr != nil && !w.hasEnt && !newer {
		w.entries, w.hasEnt = entries, true
	}
	if nameErr != nil && !w.hasName && !newer {
		w.name, w.hasName = name, true
	}
	w.mu.Unlock()

	switch {
	case err != nil && !w.failing:
		w.failing = true
		slog.Error("persisting deck failed", "error", err)
	case err == nil && w.failing:
		w.failing = false
		slog.Info("persisting deck recovered")
	}
	return err
}
