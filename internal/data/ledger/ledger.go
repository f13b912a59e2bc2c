// Package ledger remembers which hands were already converted and which
// hand id was handed out last, so the exporter can re-read a log from the
// start after every restart without duplicating or renumbering hands.
package ledger

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/penwyp/psvr-exporter/internal/core/constants"
	"github.com/penwyp/psvr-exporter/internal/core/model"
)

// Snapshot is a point-in-time copy of the ledger.
type Snapshot struct {
	Cursor time.Time
	LastID int64
}

// Ledger tracks the resume cursor and the hand id counter.
type Ledger struct {
	store Store

	mu     sync.Mutex
	cursor time.Time
	lastID int64
}

// Open loads the cursor and counter from store. Missing keys start at zero.
func Open(store Store) (*Ledger, error) {
	l := &Ledger{store: store}

	raw, ok, err := store.Get(model.KeyLastConvertedHandTime)
	if err != nil {
		return nil, err
	}
	if ok && raw != "" {
		if l.cursor, err = time.Parse(constants.CursorLayout, raw); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", model.KeyLastConvertedHandTime, raw, err)
		}
	}

	raw, ok, err = store.Get(model.KeyLastIdUsed)
	if err != nil {
		return nil, err
	}
	if ok && raw != "" {
		if l.lastID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", model.KeyLastIdUsed, raw, err)
		}
	}

	return l, nil
}

// AlreadyConverted reports whether a hand played at t is at or before the
// cursor. Equal times count as converted.
func (l *Ledger) AlreadyConverted(t time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.cursor.IsZero() && !t.After(l.cursor)
}

// NextID returns the id the next committed hand must carry. It does not
// reserve anything; only Commit advances the counter.
func (l *Ledger) NextID() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastID + 1
}

// Commit records that the hand played at t was converted under id. Cursor
// and counter are persisted together before the in-memory state moves.
func (l *Ledger) Commit(t time.Time, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id != l.lastID+1 {
		return fmt.Errorf("%w: hand id %d does not follow %d", model.ErrLedgerConflict, id, l.lastID)
	}
	if t.Before(l.cursor) {
		return fmt.Errorf("%w: hand time %s is before cursor %s", model.ErrLedgerConflict,
			t.Format(constants.CursorLayout), l.cursor.Format(constants.CursorLayout))
	}

	err := l.store.Set(map[string]string{
		model.KeyLastConvertedHandTime: t.Format(constants.CursorLayout),
		model.KeyLastIdUsed:            strconv.FormatInt(id, 10),
	})
	if err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}

	l.cursor = t
	l.lastID = id
	return nil
}

// ResetCursor forgets the cursor so every hand in the log is converted
// again. The id counter is kept, so re-exported hands get fresh ids.
func (l *Ledger) ResetCursor() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Set(map[string]string{model.KeyLastConvertedHandTime: ""}); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}
	l.cursor = time.Time{}
	return nil
}

// Snapshot returns the current cursor and counter.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{Cursor: l.cursor, LastID: l.lastID}
}

// Close closes the underlying store.
func (l *Ledger) Close() error {
	return l.store.Close()
}

// Fork returns an in-memory ledger starting from the current state.
// Commits on the fork never reach this ledger's store.
func (l *Ledger) Fork() *Ledger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Ledger{store: NewMemoryStore(), cursor: l.cursor, lastID: l.lastID}
}
