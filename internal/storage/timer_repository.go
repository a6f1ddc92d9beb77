package storage

import (
	"context"
	"fmt"
	"time"
)

// TimerRepository persists active cleaning session timers as a
// room-number keyed map of start timestamps.
type TimerRepository struct {
	BaseRepository
}

// NewTimerRepository creates a new timer repository.
func NewTimerRepository(db *DB) *TimerRepository {
	return &TimerRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Load retrieves all persisted timer entries.
func (r *TimerRepository) Load(ctx context.Context) (map[string]time.Time, error) {
	rows, err := r.DB().QueryContext(ctx, "SELECT room_no, started_at FROM room_timers")
	if err != nil {
		return nil, fmt.Errorf("querying timers: %w", err)
	}
	defer rows.Close()

	starts := make(map[string]time.Time)
	for rows.Next() {
		var roomNo string
		var millis int64
		if err := rows.Scan(&roomNo, &millis); err != nil {
			return nil, fmt.Errorf("scanning timer: %w", err)
		}
		starts[roomNo] = time.UnixMilli(millis).UTC()
	}

	return starts, rows.Err()
}

// Put records the start timestamp for a room, overwriting any prior entry.
func (r *TimerRepository) Put(ctx context.Context, roomNo string, startedAt time.Time) error {
	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO room_timers (room_no, started_at) VALUES (?, ?)
		ON CONFLICT (room_no) DO UPDATE SET started_at = excluded.started_at
	`, roomNo, startedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("storing timer for room %s: %w", roomNo, err)
	}
	return nil
}

// Delete removes the timer entry for a room. Missing entries are a no-op.
func (r *TimerRepository) Delete(ctx context.Context, roomNo string) error {
	if _, err := r.DB().ExecContext(ctx, "DELETE FROM room_timers WHERE room_no = ?", roomNo); err != nil {
		return fmt.Errorf("deleting timer for room %s: %w", roomNo, err)
	}
	return nil
}
