// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/housekeeping-board/backend/internal/api/handlers"
	"github.com/housekeeping-board/backend/internal/api/middleware"
	"github.com/housekeeping-board/backend/internal/directory"
	"github.com/housekeeping-board/backend/internal/engine"
	"github.com/housekeeping-board/backend/internal/remote"
	"github.com/housekeeping-board/backend/internal/staff"
	"github.com/housekeeping-board/backend/internal/storage"
	"github.com/housekeeping-board/backend/internal/syncer"
	"github.com/housekeeping-board/backend/internal/timer"
	"github.com/housekeeping-board/backend/internal/websocket"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(
	db *storage.DB,
	hub *websocket.Hub,
	broadcaster *websocket.EventBroadcaster,
	staticDir string,
	dir *directory.Directory,
	eng *engine.Engine,
	tracker *timer.Tracker,
	registry *staff.Registry,
	controller *syncer.Controller,
	scheduler *syncer.Scheduler,
	collab remote.Collaborator,
) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(db)).Methods("GET")
	api.HandleFunc("/status", handlers.Status(dir, controller, scheduler, registry, collab, hub)).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(hub)).Methods("GET")

	// Room endpoints
	api.HandleFunc("/rooms", handlers.ListRooms(dir)).Methods("GET")
	api.HandleFunc("/rooms/stats", handlers.RoomStats(dir)).Methods("GET")
	api.HandleFunc("/rooms/board/{board}/stats", handlers.BoardStats(dir)).Methods("GET")
	api.HandleFunc("/rooms/{room}", handlers.UpdateRoom(eng, registry)).Methods("PATCH")
	api.HandleFunc("/rooms/{room}/start", handlers.StartRoom(tracker, registry, collab, broadcaster)).Methods("POST")
	api.HandleFunc("/rooms/{room}/finish", handlers.FinishRoom(tracker, eng, dir, registry)).Methods("POST")

	// Assignment endpoint
	api.HandleFunc("/assignments", handlers.BulkAssign(eng)).Methods("POST")

	// Staff endpoints
	api.HandleFunc("/staff/login", handlers.Login(registry)).Methods("POST")
	api.HandleFunc("/staff/logout", handlers.Logout(registry)).Methods("POST")
	api.HandleFunc("/staff/break", handlers.Break(registry)).Methods("POST")

	// Sync endpoints
	api.HandleFunc("/sync", handlers.SyncStatus(controller)).Methods("GET")
	api.HandleFunc("/sync/refresh", handlers.TriggerRefresh(controller)).Methods("POST")

	// Serve static frontend files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	return r
}
