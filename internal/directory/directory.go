// Package directory holds the authoritative in-memory set of rooms for
// the current session and exposes the query operations the dashboard
// views are built on.
package directory

import (
	"strings"
	"sync"

	"github.com/housekeeping-board/backend/internal/storage/models"
)

// Board filter sentinels. BoardAll disables the assignment filter and
// BoardUnassigned matches rooms with no assigned board.
const (
	BoardAll        = "ALL"
	BoardUnassigned = "UNASSIGNED"
)

// Query describes a room filter. Zero values mean "no constraint" except
// Board, where the empty string is treated like BoardAll.
type Query struct {
	Search      string
	GuestStatus string
	Board       string
}

// Stats is the front-desk aggregate over the full directory.
type Stats struct {
	Total     int `json:"total"`
	Dirty     int `json:"dirty"`
	Clean     int `json:"clean"`
	Arrivals  int `json:"arrivals"`
	Checkouts int `json:"checkouts"`
}

// BoardStats is the housekeeping stat strip for a single board.
// Minutes counts the estimated service time still outstanding.
type BoardStats struct {
	Total     int `json:"total"`
	Done      int `json:"done"`
	Remaining int `json:"remaining"`
	Minutes   int `json:"minutes"`
}

// Patch is a partial room update. Nil fields are left untouched.
type Patch struct {
	RoomType           *string             `json:"roomType,omitempty"`
	HousekeepingStatus *models.RoomStatus  `json:"housekeepingStatus,omitempty"`
	GuestStatus        *models.GuestStatus `json:"guestStatus,omitempty"`
	OccupancyStatus    *string             `json:"occupancyStatus,omitempty"`
	AssignedHK         *string             `json:"assignedHk,omitempty"`
	Minutes            *int                `json:"minutes,omitempty"`
	Notes              *string             `json:"notes,omitempty"`
	Done               *bool               `json:"done,omitempty"`
	ServiceType        *string             `json:"serviceType,omitempty"`
}

// Directory is the single source of truth for Room entities in a
// process. Mutations go through Load and the merge primitives used by
// the assignment engine; reads always see the latest applied state.
type Directory struct {
	mu    sync.RWMutex
	rooms []models.Room
	index map[string]int
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{index: make(map[string]int)}
}

// Load replaces the entire directory snapshot. Idempotent; last write wins.
func (d *Directory) Load(rooms []models.Room) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rooms = make([]models.Room, len(rooms))
	copy(d.rooms, rooms)
	d.index = make(map[string]int, len(rooms))
	for i, room := range d.rooms {
		d.index[room.Room] = i
	}
}

// Len returns the number of rooms in the directory.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}

// Rooms returns a copy of the full directory in stored order.
func (d *Directory) Rooms() []models.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.Room, len(d.rooms))
	copy(out, d.rooms)
	return out
}

// Get returns the room with the given number.
func (d *Directory) Get(roomNo string) (models.Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i, ok := d.index[roomNo]
	if !ok {
		return models.Room{}, false
	}
	return d.rooms[i], true
}

// Filter returns the rooms matching the query, in stored order.
// The search term matches case-insensitively against the room number.
func (d *Directory) Filter(q Query) []models.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()

	search := strings.ToLower(q.Search)
	out := make([]models.Room, 0, len(d.rooms))
	for _, room := range d.rooms {
		if search != "" && !strings.Contains(strings.ToLower(room.Room), search) {
			continue
		}
		if q.GuestStatus != "" && q.GuestStatus != BoardAll && string(room.GuestStatus) != q.GuestStatus {
			continue
		}
		if !matchesBoard(room, q.Board) {
			continue
		}
		out = append(out, room)
	}
	return out
}

func matchesBoard(room models.Room, board string) bool {
	switch board {
	case "", BoardAll:
		return true
	case BoardUnassigned:
		return room.AssignedHK == ""
	default:
		return room.AssignedHK == board
	}
}

// Stats computes the front-desk aggregate in a single pass.
func (d *Directory) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := Stats{Total: len(d.rooms)}
	for _, room := range d.rooms {
		switch room.HousekeepingStatus {
		case models.StatusDirty:
			s.Dirty++
		case models.StatusClean:
			s.Clean++
		}
		switch room.GuestStatus {
		case models.GuestArrival:
			s.Arrivals++
		case models.GuestCheckout:
			s.Checkouts++
		}
	}
	return s
}

// BoardStats computes the stat strip for one board's assigned rooms.
func (d *Directory) BoardStats(boardID string) BoardStats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var s BoardStats
	for _, room := range d.rooms {
		if room.AssignedHK != boardID {
			continue
		}
		s.Total++
		if room.Done {
			s.Done++
		} else {
			s.Remaining++
			s.Minutes += room.Minutes
		}
	}
	return s
}

// ApplyPatch merges the patch into the room with the given number and
// returns the updated room. When no room matches, the directory is left
// unchanged and ok is false; callers treat that as a silent no-op.
func (d *Directory) ApplyPatch(roomNo string, p Patch) (models.Room, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, ok := d.index[roomNo]
	if !ok {
		return models.Room{}, false
	}

	room := &d.rooms[i]
	if p.RoomType != nil {
		room.RoomType = *p.RoomType
	}
	if p.HousekeepingStatus != nil {
		room.HousekeepingStatus = *p.HousekeepingStatus
	}
	if p.GuestStatus != nil {
		room.GuestStatus = *p.GuestStatus
	}
	if p.OccupancyStatus != nil {
		room.OccupancyStatus = *p.OccupancyStatus
	}
	if p.AssignedHK != nil {
		room.AssignedHK = *p.AssignedHK
	}
	if p.Minutes != nil {
		room.Minutes = *p.Minutes
	}
	if p.Notes != nil {
		room.Notes = *p.Notes
	}
	if p.Done != nil {
		room.Done = *p.Done
	}
	if p.ServiceType != nil {
		room.ServiceType = *p.ServiceType
	}
	// A room marked done is clean, whatever the patch said.
	if room.Done {
		room.HousekeepingStatus = models.StatusClean
	}
	return *room, true
}

// AssignBoards sets the assigned board for every room whose number is in
// roomNos and returns the count of rooms touched. Rooms not in the set
// are untouched; unknown numbers are skipped.
func (d *Directory) AssignBoards(roomNos []string, boardID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	assigned := 0
	for _, roomNo := range roomNos {
		if i, ok := d.index[roomNo]; ok {
			d.rooms[i].AssignedHK = boardID
			assigned++
		}
	}
	return assigned
}
