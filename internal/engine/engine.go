// Package engine applies room mutations: optimistic local updates first,
// remote notification after. Local state is never rolled back when the
// remote call fails; staff must not lose in-progress work to a flaky
// network call, at the cost of local/remote divergence until the next
// refresh.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/housekeeping-board/backend/internal/directory"
	"github.com/housekeeping-board/backend/internal/remote"
	"github.com/housekeeping-board/backend/internal/storage/models"
)

// FrontDeskBoard attributes updates made outside a staff session.
const FrontDeskBoard = "FD"

const defaultPushTimeout = 30 * time.Second

// Events receives the engine's user-facing outcomes.
type Events interface {
	RoomUpdated(room models.Room, boardID string)
	RoomUpdateFailed(roomNo, boardID string, err error)
	AssignmentApplied(roomNos []string, boardID string)
	AssignmentFailed(roomNos []string, boardID string, err error)
}

// Refresher re-pulls the directory from the collaborator. Used to
// reconcile bulk assignments when the collaborator is authoritative.
type Refresher interface {
	Refresh()
}

// Engine is the only component that mutates the room directory.
type Engine struct {
	dir         *directory.Directory
	collab      remote.Collaborator
	events      Events
	refresher   Refresher
	pushTimeout time.Duration
}

// New creates an engine over the given directory and collaborator.
// refresher may be nil when no reconciliation refresh is wanted.
func New(dir *directory.Directory, collab remote.Collaborator, events Events, refresher Refresher) *Engine {
	return &Engine{
		dir:         dir,
		collab:      collab,
		events:      events,
		refresher:   refresher,
		pushTimeout: defaultPushTimeout,
	}
}

// UpdateRoom merges the patch into the matching directory entry and
// notifies the collaborator in the background. When no room matches the
// number the whole operation is a silent no-op, not an error.
func (e *Engine) UpdateRoom(boardID, roomNo string, patch directory.Patch) (models.Room, bool) {
	if boardID == "" {
		boardID = FrontDeskBoard
	}

	room, ok := e.dir.ApplyPatch(roomNo, patch)
	if !ok {
		return models.Room{}, false
	}

	e.events.RoomUpdated(room, boardID)

	// Push runs detached from the request: the optimistic mutation is
	// already visible and must survive a remote failure.
	go e.pushUpdate(boardID, room)

	return room, true
}

func (e *Engine) pushUpdate(boardID string, room models.Room) {
	ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
	defer cancel()

	if err := e.collab.UpdateRoom(ctx, boardID, room); err != nil {
		log.Printf("Remote update failed for room %s: %v", room.Room, err)
		e.events.RoomUpdateFailed(room.Room, boardID, err)
	}
}

// BulkAssign assigns every listed room to the given board, locally
// first, then at the collaborator. An empty room set is a no-op. When
// the collaborator is authoritative, a successful ack triggers a full
// refresh so cross-board conflicts resolve in the remote's favor.
func (e *Engine) BulkAssign(roomNos []string, boardID string) int {
	if len(roomNos) == 0 {
		return 0
	}

	assigned := e.dir.AssignBoards(roomNos, boardID)

	go e.pushAssignment(roomNos, boardID)

	return assigned
}

func (e *Engine) pushAssignment(roomNos []string, boardID string) {
	ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
	defer cancel()

	if err := e.collab.AssignRoomsBulk(ctx, roomNos, boardID); err != nil {
		log.Printf("Remote bulk assign failed for board %s: %v", boardID, err)
		e.events.AssignmentFailed(roomNos, boardID, err)
		return
	}

	e.events.AssignmentApplied(roomNos, boardID)

	if e.collab.Authoritative() && e.refresher != nil {
		e.refresher.Refresh()
	}
}
