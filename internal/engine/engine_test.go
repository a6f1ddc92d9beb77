package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/housekeeping-board/backend/internal/directory"
	"github.com/housekeeping-board/backend/internal/storage/models"
)

// stubCollaborator records calls and fails on demand.
type stubCollaborator struct {
	updateErr     error
	assignErr     error
	authoritative bool

	updates chan updateCall
	assigns chan assignCall
}

type updateCall struct {
	boardID string
	room    models.Room
}

type assignCall struct {
	roomNos []string
	boardID string
}

func newStubCollaborator() *stubCollaborator {
	return &stubCollaborator{
		updates: make(chan updateCall, 8),
		assigns: make(chan assignCall, 8),
	}
}

func (s *stubCollaborator) FetchAllRooms(ctx context.Context) ([]models.Room, error) {
	return nil, nil
}

func (s *stubCollaborator) UpdateRoom(ctx context.Context, boardID string, room models.Room) error {
	s.updates <- updateCall{boardID, room}
	return s.updateErr
}

func (s *stubCollaborator) AssignRoomsBulk(ctx context.Context, roomNos []string, boardID string) error {
	s.assigns <- assignCall{roomNos, boardID}
	return s.assignErr
}

func (s *stubCollaborator) RegisterStaffByName(ctx context.Context, name string) (models.HKStaff, error) {
	return models.HKStaff{Num: "1", Name: name}, nil
}

func (s *stubCollaborator) StartRoom(ctx context.Context, roomNo, staffName string) error {
	return nil
}

func (s *stubCollaborator) LogBreak(ctx context.Context, staffName string, action models.BreakAction) error {
	return nil
}

func (s *stubCollaborator) Authoritative() bool { return s.authoritative }

// stubEvents captures engine outcomes on channels so tests can wait for
// the background push.
type stubEvents struct {
	updated      chan models.Room
	updateFailed chan string
	applied      chan []string
	assignFailed chan []string
}

func newStubEvents() *stubEvents {
	return &stubEvents{
		updated:      make(chan models.Room, 8),
		updateFailed: make(chan string, 8),
		applied:      make(chan []string, 8),
		assignFailed: make(chan []string, 8),
	}
}

func (s *stubEvents) RoomUpdated(room models.Room, boardID string) { s.updated <- room }
func (s *stubEvents) RoomUpdateFailed(roomNo, boardID string, err error) {
	s.updateFailed <- roomNo
}
func (s *stubEvents) AssignmentApplied(roomNos []string, boardID string) { s.applied <- roomNos }
func (s *stubEvents) AssignmentFailed(roomNos []string, boardID string, err error) {
	s.assignFailed <- roomNos
}

type stubRefresher struct {
	refreshed chan struct{}
}

func (s *stubRefresher) Refresh() { s.refreshed <- struct{}{} }

func wait[T any](t *testing.T, ch chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func newTestEngine(collab *stubCollaborator, events *stubEvents, refresher Refresher) (*Engine, *directory.Directory) {
	dir := directory.New()
	dir.Load([]models.Room{
		{Room: "101", HousekeepingStatus: models.StatusDirty, Notes: "old note"},
		{Room: "102", HousekeepingStatus: models.StatusDirty},
	})
	return New(dir, collab, events, refresher), dir
}

func TestUpdateRoomAppliesLocallyAndPushes(t *testing.T) {
	collab := newStubCollaborator()
	events := newStubEvents()
	e, dir := newTestEngine(collab, events, nil)

	done := true
	notes := "old note | 10m clean"
	room, ok := e.UpdateRoom("3", "101", directory.Patch{Done: &done, Notes: &notes})
	if !ok {
		t.Fatal("expected update to apply")
	}
	if !room.Done || room.Notes != notes {
		t.Fatalf("unexpected room after patch: %+v", room)
	}

	wait(t, events.updated, "room.updated event")
	call := wait(t, collab.updates, "remote update")
	if call.boardID != "3" || call.room.Room != "101" || call.room.Notes != notes || !call.room.Done {
		t.Fatalf("unexpected remote call: %+v", call)
	}

	if got, _ := dir.Get("101"); !got.Done {
		t.Fatal("directory not mutated")
	}
}

func TestUpdateRoomMissingTargetIsSilentNoOp(t *testing.T) {
	collab := newStubCollaborator()
	events := newStubEvents()
	e, dir := newTestEngine(collab, events, nil)
	before := dir.Rooms()

	done := true
	if _, ok := e.UpdateRoom("3", "999", directory.Patch{Done: &done}); ok {
		t.Fatal("update of unknown room must not apply")
	}

	select {
	case <-collab.updates:
		t.Fatal("no remote call expected for unknown room")
	case <-time.After(100 * time.Millisecond):
	}

	after := dir.Rooms()
	if len(after) != len(before) {
		t.Fatalf("directory changed: %d -> %d rooms", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("room %s changed", before[i].Room)
		}
	}
}

func TestUpdateRoomRemoteFailureKeepsLocalState(t *testing.T) {
	collab := newStubCollaborator()
	collab.updateErr = errors.New("sheet unreachable")
	events := newStubEvents()
	e, dir := newTestEngine(collab, events, nil)

	done := true
	if _, ok := e.UpdateRoom("", "101", directory.Patch{Done: &done}); !ok {
		t.Fatal("expected local apply")
	}

	wait(t, collab.updates, "remote update attempt")
	if roomNo := wait(t, events.updateFailed, "room.update_failed event"); roomNo != "101" {
		t.Fatalf("failure event for wrong room: %s", roomNo)
	}

	// No rollback.
	if got, _ := dir.Get("101"); !got.Done {
		t.Fatal("optimistic mutation was rolled back")
	}
}

func TestUpdateRoomDefaultsToFrontDeskBoard(t *testing.T) {
	collab := newStubCollaborator()
	events := newStubEvents()
	e, _ := newTestEngine(collab, events, nil)

	done := true
	e.UpdateRoom("", "101", directory.Patch{Done: &done})
	if call := wait(t, collab.updates, "remote update"); call.boardID != FrontDeskBoard {
		t.Fatalf("expected board %q, got %q", FrontDeskBoard, call.boardID)
	}
}

func TestBulkAssignAuthoritativeTriggersRefresh(t *testing.T) {
	collab := newStubCollaborator()
	collab.authoritative = true
	events := newStubEvents()
	refresher := &stubRefresher{refreshed: make(chan struct{}, 1)}
	e, dir := newTestEngine(collab, events, refresher)

	if n := e.BulkAssign([]string{"101", "102"}, "3"); n != 2 {
		t.Fatalf("expected 2 rooms assigned, got %d", n)
	}

	wait(t, collab.assigns, "remote bulk assign")
	wait(t, events.applied, "assignment.applied event")
	wait(t, refresher.refreshed, "reconciliation refresh")

	got := dir.Filter(directory.Query{Board: "3"})
	if len(got) != 2 {
		t.Fatalf("expected 101 and 102 on board 3, got %d rooms", len(got))
	}
}

func TestBulkAssignEmptySetIsNoOp(t *testing.T) {
	collab := newStubCollaborator()
	events := newStubEvents()
	e, _ := newTestEngine(collab, events, nil)

	if n := e.BulkAssign(nil, "3"); n != 0 {
		t.Fatalf("expected no-op, got %d assigned", n)
	}
	select {
	case <-collab.assigns:
		t.Fatal("no remote call expected for empty set")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBulkAssignFailureKeepsLocalAssignment(t *testing.T) {
	collab := newStubCollaborator()
	collab.assignErr = errors.New("sheet unreachable")
	events := newStubEvents()
	e, dir := newTestEngine(collab, events, nil)

	e.BulkAssign([]string{"101"}, "4")
	wait(t, collab.assigns, "remote bulk assign attempt")
	wait(t, events.assignFailed, "assignment.failed event")

	if got, _ := dir.Get("101"); got.AssignedHK != "4" {
		t.Fatalf("local assignment lost: %q", got.AssignedHK)
	}
}
