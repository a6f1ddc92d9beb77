package remote

import (
	"context"
	"fmt"
	"log"

	"github.com/housekeeping-board/backend/internal/storage"
	"github.com/housekeeping-board/backend/internal/storage/models"
)

// LocalStore is the collaborator used when no spreadsheet API is
// configured. Room state lives in the local SQLite snapshot; a fresh
// database is seeded with a mock floor so the dashboard works out of
// the box.
type LocalStore struct {
	rooms *storage.RoomRepository
}

// NewLocalStore creates a local-fallback collaborator over the given
// room repository.
func NewLocalStore(rooms *storage.RoomRepository) *LocalStore {
	return &LocalStore{rooms: rooms}
}

// Authoritative is false: the local snapshot is owned by this process,
// so optimistic state needs no reconciliation refresh.
func (s *LocalStore) Authoritative() bool {
	return false
}

// FetchAllRooms returns the persisted snapshot, seeding mock rooms first
// when the store is empty.
func (s *LocalStore) FetchAllRooms(ctx context.Context) ([]models.Room, error) {
	count, err := s.rooms.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.rooms.ReplaceAll(ctx, MockRooms()); err != nil {
			return nil, fmt.Errorf("seeding mock rooms: %w", err)
		}
		log.Println("Seeded local store with mock rooms")
	}
	return s.rooms.List(ctx)
}

// UpdateRoom persists the full merged room. The snapshot is the source
// the next refresh reloads from, so every patched field must land here
// or the refresh would revert it.
func (s *LocalStore) UpdateRoom(ctx context.Context, boardID string, room models.Room) error {
	return s.rooms.UpdateRoom(ctx, room)
}

// AssignRoomsBulk persists board assignments for every listed room.
func (s *LocalStore) AssignRoomsBulk(ctx context.Context, roomNos []string, boardID string) error {
	return s.rooms.AssignBulk(ctx, roomNos, boardID)
}

// RegisterStaffByName accepts any non-empty name onto board 1.
func (s *LocalStore) RegisterStaffByName(ctx context.Context, name string) (models.HKStaff, error) {
	return models.HKStaff{Num: "1", Name: name}, nil
}

// StartRoom logs the start; there is no sheet to record it in.
func (s *LocalStore) StartRoom(ctx context.Context, roomNo, staffName string) error {
	log.Printf("Room %s started by %s (local store)", roomNo, staffName)
	return nil
}

// LogBreak logs the break transition; there is no sheet to record it in.
func (s *LocalStore) LogBreak(ctx context.Context, staffName string, action models.BreakAction) error {
	log.Printf("Break %s for %s (local store)", action, staffName)
	return nil
}

// MockRooms builds the demo floor: rooms 101-140 with a mix of room
// types, guest statuses and service types.
func MockRooms() []models.Room {
	rooms := make([]models.Room, 0, 40)
	for i := 0; i < 40; i++ {
		room := models.Room{
			Room:               fmt.Sprintf("%d", 101+i),
			RoomType:           "Double Queen",
			HousekeepingStatus: models.StatusDirty,
			GuestStatus:        models.GuestStayover,
			OccupancyStatus:    "Occupied",
			Minutes:            30,
			ServiceType:        "Full Stayover Svc",
		}
		if i%2 == 0 {
			room.RoomType = "King"
		}
		if i%4 == 0 {
			room.GuestStatus = models.GuestCheckout
		} else if i%3 == 0 {
			room.GuestStatus = models.GuestArrival
		}
		if i%3 == 0 {
			room.ServiceType = "Departure Clean"
		}
		if i%10 == 0 {
			room.Notes = "Guest requested extra towels"
		}
		rooms = append(rooms, room)
	}
	return rooms
}
