package websocket

import (
	"log"
	"time"

	"github.com/housekeeping-board/backend/internal/storage/models"
)

// EventBroadcaster handles broadcasting WebSocket events.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// RoomUpdated sends a room.updated event after an optimistic mutation.
func (b *EventBroadcaster) RoomUpdated(room models.Room, boardID string) {
	b.send(NewMessage(TypeRoomUpdated, RoomUpdatedPayload{
		Room:    room,
		BoardID: boardID,
	}))
}

// RoomUpdateFailed sends a room.update_failed event. The payload carries
// enough context for the views to show a blocking acknowledgment.
func (b *EventBroadcaster) RoomUpdateFailed(roomNo, boardID string, err error) {
	b.send(NewMessage(TypeRoomUpdateFailed, RoomUpdateFailedPayload{
		RoomNo:  roomNo,
		BoardID: boardID,
		Error:   err.Error(),
	}))
}

// RoomTimerStarted sends a room.timer_started event.
func (b *EventBroadcaster) RoomTimerStarted(roomNo, staffName string, startedAt time.Time) {
	b.send(NewMessage(TypeRoomTimerStarted, RoomTimerStartedPayload{
		RoomNo:    roomNo,
		StaffName: staffName,
		StartedAt: startedAt,
	}))
}

// AssignmentApplied sends an assignment.applied event.
func (b *EventBroadcaster) AssignmentApplied(roomNos []string, boardID string) {
	b.send(NewMessage(TypeAssignmentApplied, AssignmentPayload{
		RoomNos: roomNos,
		BoardID: boardID,
	}))
}

// AssignmentFailed sends an assignment.failed event.
func (b *EventBroadcaster) AssignmentFailed(roomNos []string, boardID string, err error) {
	b.send(NewMessage(TypeAssignmentFailed, AssignmentPayload{
		RoomNos: roomNos,
		BoardID: boardID,
		Error:   err.Error(),
	}))
}

// RoomsRefreshed sends a rooms.refreshed event after a successful fetch.
func (b *EventBroadcaster) RoomsRefreshed(total int) {
	b.send(NewMessage(TypeRoomsRefreshed, RoomsRefreshedPayload{Total: total}))
}

// SyncError sends a sync.error event for a failed or timed-out fetch.
func (b *EventBroadcaster) SyncError(message string, timeout bool) {
	b.send(NewMessage(TypeSyncError, SyncErrorPayload{
		Error:   message,
		Timeout: timeout,
	}))
}

// BreakChanged sends a staff.break_changed event.
func (b *EventBroadcaster) BreakChanged(staffName string, onBreak bool) {
	b.send(NewMessage(TypeBreakChanged, BreakChangedPayload{
		StaffName: staffName,
		OnBreak:   onBreak,
	}))
}

// Notify sends a free-form notification event.
func (b *EventBroadcaster) Notify(level, title, message string) {
	b.send(NewMessage(TypeNotification, NotificationPayload{
		Level:   level,
		Title:   title,
		Message: message,
	}))
}

func (b *EventBroadcaster) send(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Failed to encode %s event: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}
