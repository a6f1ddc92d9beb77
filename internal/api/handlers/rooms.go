// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/housekeeping-board/backend/internal/api/middleware"
	"github.com/housekeeping-board/backend/internal/directory"
	"github.com/housekeeping-board/backend/internal/engine"
	"github.com/housekeeping-board/backend/internal/staff"
	"github.com/housekeeping-board/backend/internal/storage/models"
)

// SessionTokenHeader carries the staff session token on housekeeping
// requests. Requests without it are attributed to the front desk.
const SessionTokenHeader = "X-Session-Token"

// ListRooms returns the filtered room list.
// Query parameters: search, guest_status, board.
func ListRooms(dir *directory.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := directory.Query{
			Search:      r.URL.Query().Get("search"),
			GuestStatus: r.URL.Query().Get("guest_status"),
			Board:       r.URL.Query().Get("board"),
		}

		rooms := dir.Filter(q)
		if rooms == nil {
			rooms = []models.Room{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rooms)
	}
}

// RoomStats returns the front-desk aggregate over the full directory.
func RoomStats(dir *directory.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dir.Stats())
	}
}

// BoardStats returns the stat strip for one board.
func BoardStats(dir *directory.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board := mux.Vars(r)["board"]

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dir.BoardStats(board))
	}
}

// UpdateRoomResponse reports whether a patch found its target.
type UpdateRoomResponse struct {
	Applied bool         `json:"applied"`
	Room    *models.Room `json:"room,omitempty"`
}

// UpdateRoom applies a merge patch to one room. A patch whose target is
// not in the directory is a silent no-op, reported with applied=false.
func UpdateRoom(eng *engine.Engine, registry *staff.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomNo := mux.Vars(r)["room"]

		var patch directory.Patch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid patch body")
			return
		}

		room, applied := eng.UpdateRoom(sessionBoard(r, registry), roomNo, patch)

		response := UpdateRoomResponse{Applied: applied}
		if applied {
			response.Room = &room
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// sessionBoard resolves the acting board from the session token header.
// Requests without a valid session act as the front desk.
func sessionBoard(r *http.Request, registry *staff.Registry) string {
	token := r.Header.Get(SessionTokenHeader)
	if token == "" || registry == nil {
		return ""
	}
	session, ok := registry.Get(token)
	if !ok {
		return ""
	}
	return session.Staff.Num
}
