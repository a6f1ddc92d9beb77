// Package timer tracks per-room cleaning session durations.
package timer

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"
)

// Store persists the room-number keyed start timestamps so active
// sessions survive a process restart.
type Store interface {
	Load(ctx context.Context) (map[string]time.Time, error)
	Put(ctx context.Context, roomNo string, startedAt time.Time) error
	Delete(ctx context.Context, roomNo string) error
}

// Tracker records when cleaning started for each room and computes the
// elapsed minutes when the room is finished. The map is keyed by room
// number only: a second start for the same room overwrites the first.
type Tracker struct {
	mu     sync.Mutex
	starts map[string]time.Time
	store  Store
	now    func() time.Time
}

// NewTracker creates a tracker backed by the given store.
func NewTracker(store Store) *Tracker {
	return &Tracker{
		starts: make(map[string]time.Time),
		store:  store,
		now:    time.Now,
	}
}

// Restore loads persisted session timers. Call once at startup.
func (t *Tracker) Restore(ctx context.Context) error {
	starts, err := t.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restoring session timers: %w", err)
	}

	t.mu.Lock()
	t.starts = starts
	if t.starts == nil {
		t.starts = make(map[string]time.Time)
	}
	t.mu.Unlock()
	return nil
}

// Start records now as the cleaning start time for the room. Restarting
// an already-running room resets its clock.
func (t *Tracker) Start(ctx context.Context, roomNo string) time.Time {
	startedAt := t.now()

	t.mu.Lock()
	t.starts[roomNo] = startedAt
	t.mu.Unlock()

	if err := t.store.Put(ctx, roomNo, startedAt); err != nil {
		log.Printf("Failed to persist timer for room %s: %v", roomNo, err)
	}
	return startedAt
}

// Active reports whether a cleaning session is running for the room.
func (t *Tracker) Active(roomNo string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.starts[roomNo]
	return ok
}

// Finish ends the room's cleaning session. It returns the elapsed
// minutes, rounded, and the room notes with a duration annotation
// appended. Without an active session the duration is zero and the notes
// come back unchanged. The timer entry is removed either way.
func (t *Tracker) Finish(ctx context.Context, roomNo, currentNotes string) (int, string) {
	t.mu.Lock()
	startedAt, ok := t.starts[roomNo]
	delete(t.starts, roomNo)
	t.mu.Unlock()

	if err := t.store.Delete(ctx, roomNo); err != nil {
		log.Printf("Failed to remove timer for room %s: %v", roomNo, err)
	}

	if !ok {
		return 0, currentNotes
	}

	minutes := int(math.Round(t.now().Sub(startedAt).Minutes()))
	if minutes <= 0 {
		return 0, currentNotes
	}

	annotation := fmt.Sprintf("%dm clean", minutes)
	if currentNotes == "" {
		return minutes, annotation
	}
	return minutes, currentNotes + " | " + annotation
}

// Abandon drops the room's timer without computing a duration.
func (t *Tracker) Abandon(ctx context.Context, roomNo string) {
	t.mu.Lock()
	delete(t.starts, roomNo)
	t.mu.Unlock()

	if err := t.store.Delete(ctx, roomNo); err != nil {
		log.Printf("Failed to remove timer for room %s: %v", roomNo, err)
	}
}
