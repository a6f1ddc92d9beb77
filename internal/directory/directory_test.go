package directory

import (
	"testing"

	"github.com/housekeeping-board/backend/internal/storage/models"
)

func testRooms() []models.Room {
	return []models.Room{
		{Room: "101", HousekeepingStatus: models.StatusDirty, GuestStatus: models.GuestCheckout, Minutes: 30},
		{Room: "102", HousekeepingStatus: models.StatusClean, GuestStatus: models.GuestArrival, AssignedHK: "2", Done: true},
		{Room: "103", HousekeepingStatus: models.StatusDirty, GuestStatus: models.GuestStayover, AssignedHK: "2", Minutes: 45},
		{Room: "201", HousekeepingStatus: models.StatusInProgress, GuestStatus: models.GuestVacant, AssignedHK: "3", Minutes: 20},
	}
}

func roomNumbers(rooms []models.Room) []string {
	nos := make([]string, len(rooms))
	for i, r := range rooms {
		nos[i] = r.Room
	}
	return nos
}

func TestFilterNoConstraintsReturnsAllInOrder(t *testing.T) {
	d := New()
	d.Load(testRooms())

	got := d.Filter(Query{Search: "", Board: BoardAll})
	if len(got) != 4 {
		t.Fatalf("expected 4 rooms, got %d", len(got))
	}
	want := []string{"101", "102", "103", "201"}
	for i, no := range roomNumbers(got) {
		if no != want[i] {
			t.Fatalf("order mismatch at %d: got %s, want %s", i, no, want[i])
		}
	}
}

func TestFilterUnassigned(t *testing.T) {
	d := New()
	d.Load(testRooms())

	got := d.Filter(Query{Board: BoardUnassigned})
	if len(got) != 1 || got[0].Room != "101" {
		t.Fatalf("expected only room 101 unassigned, got %v", roomNumbers(got))
	}
}

func TestFilterByBoardAndSearch(t *testing.T) {
	d := New()
	d.Load(testRooms())

	got := d.Filter(Query{Board: "2"})
	if len(got) != 2 || got[0].Room != "102" || got[1].Room != "103" {
		t.Fatalf("board filter: got %v", roomNumbers(got))
	}

	got = d.Filter(Query{Search: "10"})
	if len(got) != 3 {
		t.Fatalf("search filter: expected 3 rooms, got %v", roomNumbers(got))
	}

	got = d.Filter(Query{Search: "10", Board: "2", GuestStatus: string(models.GuestStayover)})
	if len(got) != 1 || got[0].Room != "103" {
		t.Fatalf("combined filter: got %v", roomNumbers(got))
	}
}

func TestFilterGuestStatusAllSentinel(t *testing.T) {
	d := New()
	d.Load(testRooms())

	if got := d.Filter(Query{GuestStatus: BoardAll}); len(got) != 4 {
		t.Fatalf("ALL guest status should not filter, got %d rooms", len(got))
	}
}

func TestStats(t *testing.T) {
	d := New()
	d.Load(testRooms())

	s := d.Stats()
	if s.Total != 4 || s.Dirty != 2 || s.Clean != 1 || s.Arrivals != 1 || s.Checkouts != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestBoardStats(t *testing.T) {
	d := New()
	d.Load(testRooms())

	s := d.BoardStats("2")
	if s.Total != 2 || s.Done != 1 || s.Remaining != 1 || s.Minutes != 45 {
		t.Fatalf("unexpected board stats: %+v", s)
	}
}

func TestApplyPatchMergesAndRetains(t *testing.T) {
	d := New()
	d.Load(testRooms())

	done := true
	status := models.StatusClean
	notes := "10m clean"
	updated, ok := d.ApplyPatch("101", Patch{Done: &done, HousekeepingStatus: &status, Notes: &notes})
	if !ok {
		t.Fatal("expected patch to apply")
	}
	if !updated.Done || updated.HousekeepingStatus != models.StatusClean || updated.Notes != "10m clean" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	// Absent fields retained.
	if updated.GuestStatus != models.GuestCheckout || updated.Minutes != 30 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestApplyPatchDoneForcesClean(t *testing.T) {
	d := New()
	d.Load(testRooms())

	// Done alone, no status in the patch.
	done := true
	updated, ok := d.ApplyPatch("101", Patch{Done: &done})
	if !ok {
		t.Fatal("expected patch to apply")
	}
	if updated.HousekeepingStatus != models.StatusClean {
		t.Fatalf("done room must be Clean, got %q", updated.HousekeepingStatus)
	}

	// A contradictory status in the same patch loses to the invariant.
	dirty := models.StatusDirty
	updated, _ = d.ApplyPatch("101", Patch{Done: &done, HousekeepingStatus: &dirty})
	if updated.HousekeepingStatus != models.StatusClean {
		t.Fatalf("done room must stay Clean, got %q", updated.HousekeepingStatus)
	}

	// Clearing done releases the status for the next patch.
	notDone := false
	updated, _ = d.ApplyPatch("101", Patch{Done: &notDone, HousekeepingStatus: &dirty})
	if updated.HousekeepingStatus != models.StatusDirty || updated.Done {
		t.Fatalf("expected Dirty and not done, got %+v", updated)
	}
}

func TestApplyPatchMissingRoomIsNoOp(t *testing.T) {
	d := New()
	d.Load(testRooms())
	before := d.Rooms()

	done := true
	if _, ok := d.ApplyPatch("999", Patch{Done: &done}); ok {
		t.Fatal("patch on unknown room must not apply")
	}

	after := d.Rooms()
	if len(after) != len(before) {
		t.Fatalf("directory length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("room %s changed by no-op patch", before[i].Room)
		}
	}
}

func TestAssignBoards(t *testing.T) {
	d := New()
	d.Load(testRooms())

	n := d.AssignBoards([]string{"101", "102", "999"}, "3")
	if n != 2 {
		t.Fatalf("expected 2 rooms assigned, got %d", n)
	}

	got := d.Filter(Query{Board: "3"})
	want := map[string]bool{"101": true, "102": true, "201": true}
	if len(got) != 3 {
		t.Fatalf("board 3 filter: got %v", roomNumbers(got))
	}
	for _, r := range got {
		if !want[r.Room] {
			t.Fatalf("unexpected room %s on board 3", r.Room)
		}
	}

	// Rooms outside the input set untouched.
	if r, _ := d.Get("103"); r.AssignedHK != "2" {
		t.Fatalf("room 103 should still be on board 2, got %q", r.AssignedHK)
	}
}

func TestLoadReplacesSnapshot(t *testing.T) {
	d := New()
	d.Load(testRooms())
	d.Load([]models.Room{{Room: "501"}})

	if d.Len() != 1 {
		t.Fatalf("expected 1 room after reload, got %d", d.Len())
	}
	if _, ok := d.Get("101"); ok {
		t.Fatal("old snapshot still visible after reload")
	}
}
