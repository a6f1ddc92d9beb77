package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/housekeeping-board/backend/internal/syncer"
)

// SyncStatus returns the current loading/error state of the sync
// controller. Views poll this to drive spinners and error banners.
func SyncStatus(controller *syncer.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(controller.Status())
	}
}

// TriggerRefresh starts a manual refresh, superseding any fetch still
// in flight. This is the user-driven retry for failed or stale loads.
func TriggerRefresh(controller *syncer.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		controller.Refresh()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"status": "refreshing"})
	}
}
