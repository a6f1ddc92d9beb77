// Package staff manages housekeeping staff sessions and the shift
// break flag.
package staff

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/housekeeping-board/backend/internal/remote"
	"github.com/housekeeping-board/backend/internal/storage"
	"github.com/housekeeping-board/backend/internal/storage/models"
)

// ErrNameRequired is returned by Login for an empty staff name. No
// remote call is made in that case.
var ErrNameRequired = errors.New("staff name is required")

// ErrUnknownSession is returned for session tokens that are not active.
var ErrUnknownSession = errors.New("unknown session token")

const logTimeout = 10 * time.Second

// Session is an authenticated staff session. Sessions live in memory
// only; a restart signs everyone out.
type Session struct {
	Token     string         `json:"token"`
	Staff     models.HKStaff `json:"staff"`
	StartedAt time.Time      `json:"started_at"`
}

// StateStore persists the break flag between restarts.
type StateStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Events receives break transitions for broadcast.
type Events interface {
	BreakChanged(staffName string, onBreak bool)
}

// Registry tracks active staff sessions and the shared break flag.
type Registry struct {
	collab remote.Collaborator
	state  StateStore
	events Events

	mu       sync.Mutex
	sessions map[string]*Session
	onBreak  bool
}

// NewRegistry creates a registry. events may be nil.
func NewRegistry(collab remote.Collaborator, state StateStore, events Events) *Registry {
	return &Registry{
		collab:   collab,
		state:    state,
		events:   events,
		sessions: make(map[string]*Session),
	}
}

// Restore loads the persisted break flag. Call once at startup.
func (r *Registry) Restore(ctx context.Context) error {
	value, ok, err := r.state.Get(ctx, storage.StateKeyOnBreak)
	if err != nil {
		return err
	}
	if ok {
		r.mu.Lock()
		r.onBreak = value == "true"
		r.mu.Unlock()
	}
	return nil
}

// Login resolves the staff name to a board via the collaborator and
// issues a session token. An empty name aborts before any remote call.
func (r *Registry) Login(ctx context.Context, name string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	hk, err := r.collab.RegisterStaffByName(ctx, name)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Token:     uuid.NewString(),
		Staff:     hk,
		StartedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.sessions[session.Token] = session
	r.mu.Unlock()

	log.Printf("Staff %s signed in on board %s", hk.Name, hk.Num)
	return session, nil
}

// Logout removes the session for the given token.
func (r *Registry) Logout(token string) bool {
	r.mu.Lock()
	session, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()

	if ok {
		log.Printf("Staff %s signed out of board %s", session.Staff.Name, session.Staff.Num)
	}
	return ok
}

// Get returns the session for the given token.
func (r *Registry) Get(token string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	return session, ok
}

// OnBreak reports the current break flag.
func (r *Registry) OnBreak() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.onBreak
}

// SetBreak toggles the break flag for the session's staff member,
// persists it, and reports the transition to the collaborator in the
// background.
func (r *Registry) SetBreak(ctx context.Context, token string, onBreak bool) error {
	session, ok := r.Get(token)
	if !ok {
		return ErrUnknownSession
	}

	value := "false"
	action := models.BreakEnd
	if onBreak {
		value = "true"
		action = models.BreakStart
	}

	// Persist before flipping the in-memory flag so the two never
	// disagree after a storage failure.
	if err := r.state.Set(ctx, storage.StateKeyOnBreak, value); err != nil {
		return err
	}

	r.mu.Lock()
	r.onBreak = onBreak
	r.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()
		if err := r.collab.LogBreak(ctx, session.Staff.Name, action); err != nil {
			log.Printf("Failed to log break %s for %s: %v", action, session.Staff.Name, err)
		}
	}()

	if r.events != nil {
		r.events.BreakChanged(session.Staff.Name, onBreak)
	}
	return nil
}
