package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/housekeeping-board/backend/internal/directory"
	"github.com/housekeeping-board/backend/internal/remote"
	"github.com/housekeeping-board/backend/internal/staff"
	"github.com/housekeeping-board/backend/internal/storage"
	"github.com/housekeeping-board/backend/internal/syncer"
	"github.com/housekeeping-board/backend/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"db_connected"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.Ping() == nil

		status := "healthy"
		if !dbConnected {
			status = "degraded"
		}

		response := HealthResponse{
			Status:      status,
			DBConnected: dbConnected,
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}

// StatusResponse represents the system status response.
type StatusResponse struct {
	Mode             string `json:"mode"` // "remote" or "local"
	RoomCount        int    `json:"room_count"`
	Loading          bool   `json:"loading"`
	SyncError        string `json:"sync_error,omitempty"`
	OnBreak          bool   `json:"on_break"`
	ConnectedClients int    `json:"connected_clients"`
	NextRefreshAt    string `json:"next_refresh_at,omitempty"`
}

// Status returns a handler that provides system status information.
func Status(
	dir *directory.Directory,
	controller *syncer.Controller,
	scheduler *syncer.Scheduler,
	registry *staff.Registry,
	collab remote.Collaborator,
	hub *websocket.Hub,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := "local"
		if collab.Authoritative() {
			mode = "remote"
		}

		syncStatus := controller.Status()

		response := StatusResponse{
			Mode:             mode,
			RoomCount:        dir.Len(),
			Loading:          syncStatus.Loading,
			SyncError:        syncStatus.Error,
			OnBreak:          registry.OnBreak(),
			ConnectedClients: hub.ClientCount(),
		}

		if scheduler != nil {
			if next := scheduler.NextRun(); next != nil {
				response.NextRefreshAt = next.UTC().Format("2006-01-02T15:04:05Z07:00")
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
