// Package syncer orchestrates loading the room directory from the
// collaborator: initial load, manual refresh, periodic refresh, and the
// loading/error state the views show.
package syncer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/housekeeping-board/backend/internal/directory"
	"github.com/housekeeping-board/backend/internal/remote"
)

// DefaultFetchTimeout is the ceiling on a single fetch attempt.
const DefaultFetchTimeout = 15 * time.Second

const timeoutMessage = "Room sync timed out. Check the connection and refresh."

// Events receives sync outcomes for broadcast to the views.
type Events interface {
	RoomsRefreshed(total int)
	SyncError(message string, timeout bool)
}

// Status is the sync state the views poll.
type Status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Controller runs fetch attempts against the collaborator and installs
// the result in the directory. Each attempt carries a sequence number;
// a completion only lands while its attempt is still current, so a
// newer refresh supersedes any pending timeout instead of racing it.
type Controller struct {
	dir    *directory.Directory
	source remote.Collaborator
	events Events

	timeout time.Duration

	mu        sync.Mutex
	loading   bool
	lastError string
	attempt   uint64
}

// New creates a controller. A non-positive timeout falls back to
// DefaultFetchTimeout.
func New(dir *directory.Directory, source remote.Collaborator, events Events, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Controller{
		dir:     dir,
		source:  source,
		events:  events,
		timeout: timeout,
	}
}

// Status returns the current loading flag and last error. The error is
// cleared at the start of every new fetch attempt.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{Loading: c.loading, Error: c.lastError}
}

// InitialLoad starts the first fetch. Identical to Refresh; named for
// the call site in main.
func (c *Controller) InitialLoad() {
	c.Refresh()
}

// Refresh starts a fetch attempt in the background, superseding any
// attempt still in flight.
func (c *Controller) Refresh() {
	go c.runFetch(c.begin())
}

// begin opens a new attempt: sets loading, clears the previous error,
// and invalidates any pending attempt.
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempt++
	c.loading = true
	c.lastError = ""
	return c.attempt
}

// runFetch performs one bounded fetch attempt. Exactly one of success,
// failure, or timeout lands per attempt, and only while the attempt is
// current.
func (c *Controller) runFetch(attempt uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	rooms, err := c.source.FetchAllRooms(ctx)

	c.mu.Lock()
	if attempt != c.attempt {
		// Superseded by a newer refresh; that attempt owns the state now.
		c.mu.Unlock()
		return
	}
	c.loading = false

	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded)
		if timedOut {
			c.lastError = timeoutMessage
		} else {
			c.lastError = "Room sync failed: " + err.Error()
		}
		message := c.lastError
		c.mu.Unlock()

		log.Printf("Room fetch failed (attempt %d): %v", attempt, err)
		if c.events != nil {
			c.events.SyncError(message, timedOut)
		}
		return
	}

	// Directory left at last-known-good on every error path; replaced
	// only here.
	c.dir.Load(rooms)
	c.lastError = ""
	c.mu.Unlock()

	log.Printf("Room directory refreshed: %d rooms", len(rooms))
	if c.events != nil {
		c.events.RoomsRefreshed(len(rooms))
	}
}
