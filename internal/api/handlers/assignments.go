package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/housekeeping-board/backend/internal/api/middleware"
	"github.com/housekeeping-board/backend/internal/engine"
)

// BulkAssignRequest assigns a set of rooms to one board.
type BulkAssignRequest struct {
	Rooms []string `json:"rooms"`
	Board string   `json:"board"`
}

// BulkAssignResponse reports how many rooms were assigned locally.
type BulkAssignResponse struct {
	Assigned int `json:"assigned"`
}

// BulkAssign assigns every listed room to the given board. The local
// state updates immediately; an authoritative collaborator reconciles
// with a full refresh once it acks.
func BulkAssign(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkAssignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.Board == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Board is required")
			return
		}

		assigned := eng.BulkAssign(req.Rooms, req.Board)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(BulkAssignResponse{Assigned: assigned})
	}
}
