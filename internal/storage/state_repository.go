package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Well-known app_state keys.
const (
	StateKeyOnBreak = "hk_on_break"
)

// StateRepository provides a small key/value store for application flags.
type StateRepository struct {
	BaseRepository
}

// NewStateRepository creates a new state repository.
func NewStateRepository(db *DB) *StateRepository {
	return &StateRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Get retrieves the value stored under key. The second return value is
// false when the key has never been set.
func (r *StateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.DB().QueryRowContext(ctx, "SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying state %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores the value under key, replacing any previous value.
func (r *StateRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, r.Now())
	if err != nil {
		return fmt.Errorf("storing state %s: %w", key, err)
	}
	return nil
}
