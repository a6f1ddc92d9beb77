package remote

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/housekeeping-board/backend/internal/storage"
	"github.com/housekeeping-board/backend/internal/storage/models"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()

	db, err := storage.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return NewLocalStore(storage.NewRoomRepository(db))
}

func TestLocalStoreSeedsMockRoomsOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rooms, err := store.FetchAllRooms(ctx)
	if err != nil {
		t.Fatalf("FetchAllRooms: %v", err)
	}
	if len(rooms) != 40 {
		t.Fatalf("expected 40 seeded rooms, got %d", len(rooms))
	}
	if rooms[0].Room != "101" || rooms[39].Room != "140" {
		t.Fatalf("unexpected room range: %s..%s", rooms[0].Room, rooms[39].Room)
	}

	// A second fetch must not re-seed.
	rooms, err = store.FetchAllRooms(ctx)
	if err != nil {
		t.Fatalf("second FetchAllRooms: %v", err)
	}
	if len(rooms) != 40 {
		t.Fatalf("expected 40 rooms on refetch, got %d", len(rooms))
	}
}

func TestLocalStoreUpdateSurvivesRefresh(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rooms, err := store.FetchAllRooms(ctx)
	if err != nil {
		t.Fatalf("FetchAllRooms: %v", err)
	}

	// The front desk toggles a room back to Dirty; the full merged
	// room is what the engine pushes.
	room := rooms[0]
	room.HousekeepingStatus = models.StatusDirty
	room.Done = false
	room.GuestStatus = models.GuestCheckout
	room.Minutes = 45
	if err := store.UpdateRoom(ctx, "FD", room); err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}

	// A refresh reloads the snapshot; the toggle must still be there.
	rooms, err = store.FetchAllRooms(ctx)
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	got := rooms[0]
	if got.HousekeepingStatus != models.StatusDirty || got.Done {
		t.Fatalf("status reverted after refresh: got %q (done=%v)", got.HousekeepingStatus, got.Done)
	}
	if got.GuestStatus != models.GuestCheckout || got.Minutes != 45 {
		t.Fatalf("patched fields lost after refresh: %+v", got)
	}
}
