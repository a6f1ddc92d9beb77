package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/housekeeping-board/backend/internal/api/middleware"
	"github.com/housekeeping-board/backend/internal/staff"
)

// LoginRequest starts a staff session.
type LoginRequest struct {
	Name string `json:"name"`
}

// LoginResponse carries the issued session.
type LoginResponse struct {
	Token string `json:"token"`
	Board string `json:"board"`
	Name  string `json:"name"`
}

// Login resolves the staff name against the collaborator and issues a
// session token. An empty name is rejected before any remote call.
func Login(registry *staff.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		session, err := registry.Login(r.Context(), req.Name)
		if errors.Is(err, staff.ErrNameRequired) {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Staff name is required")
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrRemote, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{
			Token: session.Token,
			Board: session.Staff.Num,
			Name:  session.Staff.Name,
		})
	}
}

// Logout ends the session for the presented token.
func Logout(registry *staff.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(SessionTokenHeader)
		signedOut := registry.Logout(token)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"signed_out": signedOut})
	}
}

// BreakRequest toggles the break flag.
type BreakRequest struct {
	OnBreak bool `json:"on_break"`
}

// Break toggles the persisted break flag for the authenticated staff
// member and logs the transition with the collaborator.
func Break(registry *staff.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BreakRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		err := registry.SetBreak(r.Context(), r.Header.Get(SessionTokenHeader), req.OnBreak)
		if errors.Is(err, staff.ErrUnknownSession) {
			middleware.WriteError(w, http.StatusUnauthorized, middleware.ErrUnauthorized, "Sign in to toggle breaks")
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to store break state")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"on_break": req.OnBreak})
	}
}
