package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/housekeeping-board/backend/internal/api/middleware"
	"github.com/housekeeping-board/backend/internal/directory"
	"github.com/housekeeping-board/backend/internal/engine"
	"github.com/housekeeping-board/backend/internal/remote"
	"github.com/housekeeping-board/backend/internal/staff"
	"github.com/housekeeping-board/backend/internal/storage/models"
	"github.com/housekeeping-board/backend/internal/timer"
	"github.com/housekeeping-board/backend/internal/websocket"
)

// StartRoomResponse reports when the cleaning session began.
type StartRoomResponse struct {
	RoomNo    string    `json:"room_no"`
	StartedAt time.Time `json:"started_at"`
}

// StartRoom begins a cleaning session for the authenticated staff
// member. Restarting an in-progress room resets its clock.
func StartRoom(tracker *timer.Tracker, registry *staff.Registry, collab remote.Collaborator, broadcaster *websocket.EventBroadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomNo := mux.Vars(r)["room"]

		session, ok := registry.Get(r.Header.Get(SessionTokenHeader))
		if !ok {
			middleware.WriteError(w, http.StatusUnauthorized, middleware.ErrUnauthorized, "Sign in to start a room")
			return
		}

		startedAt := tracker.Start(r.Context(), roomNo)

		// Fire-and-forget: the sheet log must never block the session.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := collab.StartRoom(ctx, roomNo, session.Staff.Name); err != nil {
				log.Printf("Failed to log start of room %s: %v", roomNo, err)
			}
		}()

		if broadcaster != nil {
			broadcaster.RoomTimerStarted(roomNo, session.Staff.Name, startedAt)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(StartRoomResponse{RoomNo: roomNo, StartedAt: startedAt})
	}
}

// FinishRoomResponse reports the completed session.
type FinishRoomResponse struct {
	DurationMinutes int         `json:"duration_minutes"`
	Room            models.Room `json:"room"`
}

// FinishRoom ends the room's cleaning session: the elapsed minutes are
// folded into the room notes and the room is marked done and clean.
func FinishRoom(tracker *timer.Tracker, eng *engine.Engine, dir *directory.Directory, registry *staff.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomNo := mux.Vars(r)["room"]

		session, ok := registry.Get(r.Header.Get(SessionTokenHeader))
		if !ok {
			middleware.WriteError(w, http.StatusUnauthorized, middleware.ErrUnauthorized, "Sign in to finish a room")
			return
		}

		room, ok := dir.Get(roomNo)
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Room not found")
			return
		}

		minutes, notes := tracker.Finish(r.Context(), roomNo, room.Notes)

		done := true
		status := models.StatusClean
		updated, _ := eng.UpdateRoom(session.Staff.Num, roomNo, directory.Patch{
			Done:               &done,
			HousekeepingStatus: &status,
			Notes:              &notes,
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(FinishRoomResponse{DurationMinutes: minutes, Room: updated})
	}
}
