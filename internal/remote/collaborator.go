// Package remote defines the collaborator boundary the room-state core
// depends on: either the spreadsheet-backed web API or a local
// storage-backed fallback. The implementation is chosen once at startup
// and injected; nothing queries the environment per call.
package remote

import (
	"context"

	"github.com/housekeeping-board/backend/internal/storage/models"
)

// Collaborator is the external system that answers room queries and
// records updates.
type Collaborator interface {
	// FetchAllRooms returns the full room list.
	FetchAllRooms(ctx context.Context) ([]models.Room, error)

	// UpdateRoom records the merged state of one room, attributed to
	// the acting board. Implementations decide how much of the room
	// they persist; the caller always hands over the full entity.
	UpdateRoom(ctx context.Context, boardID string, room models.Room) error

	// AssignRoomsBulk assigns every listed room to the given board.
	AssignRoomsBulk(ctx context.Context, roomNos []string, boardID string) error

	// RegisterStaffByName resolves a staff name to a board assignment.
	RegisterStaffByName(ctx context.Context, name string) (models.HKStaff, error)

	// StartRoom records that cleaning started. Fire-and-forget: errors
	// are reported but never block the session.
	StartRoom(ctx context.Context, roomNo, staffName string) error

	// LogBreak records a break transition. Fire-and-forget.
	LogBreak(ctx context.Context, staffName string, action models.BreakAction) error

	// Authoritative reports whether this collaborator is the source of
	// truth for assignment conflicts across boards. When true, bulk
	// assignments reconcile with a full refresh after the remote ack.
	Authoritative() bool
}
