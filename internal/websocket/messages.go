package websocket

import (
	"encoding/json"
	"time"

	"github.com/housekeeping-board/backend/internal/storage/models"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeRoomUpdated       MessageType = "room.updated"
	TypeRoomUpdateFailed  MessageType = "room.update_failed"
	TypeRoomTimerStarted  MessageType = "room.timer_started"
	TypeAssignmentApplied MessageType = "assignment.applied"
	TypeAssignmentFailed  MessageType = "assignment.failed"
	TypeRoomsRefreshed    MessageType = "rooms.refreshed"
	TypeSyncError         MessageType = "sync.error"
	TypeBreakChanged      MessageType = "staff.break_changed"
	TypeNotification      MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// RoomUpdatedPayload is the payload for room.updated events.
type RoomUpdatedPayload struct {
	Room    models.Room `json:"room"`
	BoardID string      `json:"board_id,omitempty"`
}

// RoomUpdateFailedPayload is the payload for room.update_failed events.
// The local mutation has already been applied, so the views must tell
// the user the remote may be out of sync.
type RoomUpdateFailedPayload struct {
	RoomNo  string `json:"room_no"`
	BoardID string `json:"board_id,omitempty"`
	Error   string `json:"error"`
}

// RoomTimerStartedPayload is the payload for room.timer_started events.
type RoomTimerStartedPayload struct {
	RoomNo    string    `json:"room_no"`
	StaffName string    `json:"staff_name"`
	StartedAt time.Time `json:"started_at"`
}

// AssignmentPayload is the payload for assignment.applied and
// assignment.failed events.
type AssignmentPayload struct {
	RoomNos []string `json:"room_nos"`
	BoardID string   `json:"board_id"`
	Error   string   `json:"error,omitempty"`
}

// RoomsRefreshedPayload is the payload for rooms.refreshed events.
type RoomsRefreshedPayload struct {
	Total int `json:"total"`
}

// SyncErrorPayload is the payload for sync.error events.
type SyncErrorPayload struct {
	Error   string `json:"error"`
	Timeout bool   `json:"timeout"`
}

// BreakChangedPayload is the payload for staff.break_changed events.
type BreakChangedPayload struct {
	StaffName string `json:"staff_name"`
	OnBreak   bool   `json:"on_break"`
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level   string `json:"level"` // info, warning, error, success
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	OriginalType string `json:"original_type,omitempty"`
}
