package timer

import (
	"context"
	"testing"
	"time"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	entries map[string]time.Time
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]time.Time)}
}

func (s *memStore) Load(ctx context.Context) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) Put(ctx context.Context, roomNo string, startedAt time.Time) error {
	s.entries[roomNo] = startedAt
	return nil
}

func (s *memStore) Delete(ctx context.Context, roomNo string) error {
	delete(s.entries, roomNo)
	return nil
}

func newTestTracker(store *memStore) (*Tracker, *time.Time) {
	clock := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	tr := NewTracker(store)
	tr.now = func() time.Time { return clock }
	return tr, &clock
}

func TestStartThenFinishComputesMinutes(t *testing.T) {
	tr, clock := newTestTracker(newMemStore())
	ctx := context.Background()

	tr.Start(ctx, "101")
	*clock = clock.Add(600000 * time.Millisecond)

	minutes, notes := tr.Finish(ctx, "101", "")
	if minutes != 10 {
		t.Fatalf("expected 10 minutes, got %d", minutes)
	}
	if notes != "10m clean" {
		t.Fatalf("expected %q, got %q", "10m clean", notes)
	}
	if tr.Active("101") {
		t.Fatal("timer entry should be removed after finish")
	}
}

func TestFinishAppendsToExistingNotes(t *testing.T) {
	tr, clock := newTestTracker(newMemStore())
	ctx := context.Background()

	tr.Start(ctx, "101")
	*clock = clock.Add(25 * time.Minute)

	minutes, notes := tr.Finish(ctx, "101", "Guest requested extra towels")
	if minutes != 25 {
		t.Fatalf("expected 25 minutes, got %d", minutes)
	}
	if notes != "Guest requested extra towels | 25m clean" {
		t.Fatalf("unexpected notes: %q", notes)
	}
}

func TestFinishWithoutStartLeavesNotesUnchanged(t *testing.T) {
	tr, _ := newTestTracker(newMemStore())

	minutes, notes := tr.Finish(context.Background(), "101", "existing note")
	if minutes != 0 {
		t.Fatalf("expected 0 minutes, got %d", minutes)
	}
	if notes != "existing note" {
		t.Fatalf("notes changed: %q", notes)
	}
}

func TestFinishZeroDurationAppendsNothing(t *testing.T) {
	tr, _ := newTestTracker(newMemStore())
	ctx := context.Background()

	tr.Start(ctx, "101")
	if minutes, notes := tr.Finish(ctx, "101", "note"); minutes != 0 || notes != "note" {
		t.Fatalf("zero-duration finish should not annotate: %d, %q", minutes, notes)
	}
}

func TestRestartResetsClock(t *testing.T) {
	tr, clock := newTestTracker(newMemStore())
	ctx := context.Background()

	tr.Start(ctx, "101")
	*clock = clock.Add(30 * time.Minute)
	tr.Start(ctx, "101")
	*clock = clock.Add(5 * time.Minute)

	if minutes, _ := tr.Finish(ctx, "101", ""); minutes != 5 {
		t.Fatalf("restart should reset the clock, got %d minutes", minutes)
	}
}

func TestRestoreLoadsPersistedTimers(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	first, clock := newTestTracker(store)
	first.Start(ctx, "101")
	*clock = clock.Add(10 * time.Minute)

	second := NewTracker(store)
	second.now = first.now
	if err := second.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if minutes, notes := second.Finish(ctx, "101", ""); minutes != 10 || notes != "10m clean" {
		t.Fatalf("restored timer: got %d minutes, notes %q", minutes, notes)
	}
}

func TestAbandonDropsTimer(t *testing.T) {
	store := newMemStore()
	tr, _ := newTestTracker(store)
	ctx := context.Background()

	tr.Start(ctx, "101")
	tr.Abandon(ctx, "101")

	if tr.Active("101") {
		t.Fatal("abandoned timer still active")
	}
	if _, ok := store.entries["101"]; ok {
		t.Fatal("abandoned timer still persisted")
	}
}
