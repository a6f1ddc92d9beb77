package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/housekeeping-board/backend/internal/storage/models"
)

// RoomRepository provides data access for the persisted room snapshot.
type RoomRepository struct {
	BaseRepository
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *DB) *RoomRepository {
	return &RoomRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ReplaceAll replaces the entire room snapshot with the given rooms,
// preserving their order. Last write wins.
func (r *RoomRepository) ReplaceAll(ctx context.Context, rooms []models.Room) error {
	return r.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM rooms"); err != nil {
			return fmt.Errorf("clearing rooms: %w", err)
		}

		now := r.Now()
		for i, room := range rooms {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO rooms (
					room_no, room_type, housekeeping_status, guest_status, occupancy_status,
					arrivals_room, check_in, check_out, assigned_hk, minutes, notes, done,
					service_type, position, updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				room.Room, room.RoomType, room.HousekeepingStatus, room.GuestStatus,
				room.OccupancyStatus, room.ArrivalsRoom, room.CheckIn, room.CheckOut,
				room.AssignedHK, room.Minutes, room.Notes, room.Done,
				room.ServiceType, i, now,
			)
			if err != nil {
				return fmt.Errorf("inserting room %s: %w", room.Room, err)
			}
		}
		return nil
	})
}

// List retrieves the room snapshot in its stored order.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT room_no, room_type, housekeeping_status, guest_status, occupancy_status,
		       arrivals_room, check_in, check_out, assigned_hk, minutes, notes, done,
		       service_type
		FROM rooms
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(
			&room.Room, &room.RoomType, &room.HousekeepingStatus, &room.GuestStatus,
			&room.OccupancyStatus, &room.ArrivalsRoom, &room.CheckIn, &room.CheckOut,
			&room.AssignedHK, &room.Minutes, &room.Notes, &room.Done,
			&room.ServiceType,
		); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// Count returns the number of rooms in the snapshot.
func (r *RoomRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting rooms: %w", err)
	}
	return count, nil
}

// UpdateRoom persists every column of one room, keyed by room number.
// Unknown room numbers are a no-op.
func (r *RoomRepository) UpdateRoom(ctx context.Context, room models.Room) error {
	_, err := r.DB().ExecContext(ctx, `
		UPDATE rooms SET
			room_type = ?, housekeeping_status = ?, guest_status = ?,
			occupancy_status = ?, arrivals_room = ?, check_in = ?, check_out = ?,
			assigned_hk = ?, minutes = ?, notes = ?, done = ?, service_type = ?,
			updated_at = ?
		WHERE room_no = ?
	`,
		room.RoomType, room.HousekeepingStatus, room.GuestStatus,
		room.OccupancyStatus, room.ArrivalsRoom, room.CheckIn, room.CheckOut,
		room.AssignedHK, room.Minutes, room.Notes, room.Done, room.ServiceType,
		r.Now(), room.Room,
	)
	if err != nil {
		return fmt.Errorf("updating room %s: %w", room.Room, err)
	}
	return nil
}

// AssignBulk sets the assigned board for every listed room.
func (r *RoomRepository) AssignBulk(ctx context.Context, roomNos []string, boardID string) error {
	if len(roomNos) == 0 {
		return nil
	}

	return r.Transaction(func(tx *sql.Tx) error {
		now := r.Now()
		for _, roomNo := range roomNos {
			_, err := tx.ExecContext(ctx, `
				UPDATE rooms SET assigned_hk = ?, updated_at = ? WHERE room_no = ?
			`, boardID, now, roomNo)
			if err != nil {
				return fmt.Errorf("assigning room %s: %w", roomNo, err)
			}
		}
		return nil
	})
}
