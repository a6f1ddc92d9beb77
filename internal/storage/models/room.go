// Package models contains the domain models for the application.
package models

import (
	"strings"
)

// RoomStatus represents the housekeeping state of a room.
type RoomStatus string

const (
	StatusDirty      RoomStatus = "Dirty"
	StatusClean      RoomStatus = "Clean"
	StatusInProgress RoomStatus = "In Progress"
)

// GuestStatus represents the guest occupancy category of a room.
type GuestStatus string

const (
	GuestStayover GuestStatus = "Stay Overs"
	GuestCheckout GuestStatus = "Checked Out"
	GuestArrival  GuestStatus = "Arrivals"
	GuestVacant   GuestStatus = "Vacant"
)

// Room represents one physical hotel room on the housekeeping board.
// Field names match the spreadsheet API wire format.
type Room struct {
	Room               string      `json:"room"`
	RoomType           string      `json:"roomType"`
	HousekeepingStatus RoomStatus  `json:"housekeepingStatus"`
	GuestStatus        GuestStatus `json:"guestStatus"`
	OccupancyStatus    string      `json:"occupancyStatus"`
	ArrivalsRoom       string      `json:"arrivalsRoom"`
	CheckIn            string      `json:"checkIn"`
	CheckOut           string      `json:"checkOut"`
	AssignedHK         string      `json:"assignedHk"`
	Minutes            int         `json:"minutes"`
	Notes              string      `json:"notes"`
	Done               bool        `json:"done"`
	ServiceType        string      `json:"serviceType"`
}

// IsFullService reports whether the room's service type calls for a full
// or stayover service.
func (r *Room) IsFullService() bool {
	st := strings.ToLower(r.ServiceType)
	return strings.Contains(st, "full") || strings.Contains(st, "stayover")
}

// HKStaff represents an authenticated housekeeping staff identity.
// Num is the board identifier the staff member works from.
type HKStaff struct {
	Num  string `json:"num"`
	Name string `json:"name"`
}

// BreakAction is a shift break transition reported to the collaborator.
type BreakAction string

const (
	BreakStart BreakAction = "START"
	BreakEnd   BreakAction = "END"
)
