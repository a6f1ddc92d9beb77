package syncer

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the room directory on a fixed interval so the
// views converge with the collaborator without manual refreshes.
type Scheduler struct {
	cron       *cron.Cron
	controller *Controller
	interval   time.Duration
	entry      cron.EntryID
}

// NewScheduler creates a scheduler that refreshes every intervalMin
// minutes. Non-positive intervals fall back to 5 minutes.
func NewScheduler(controller *Controller, intervalMin int) *Scheduler {
	if intervalMin <= 0 {
		intervalMin = 5
	}
	return &Scheduler{
		cron:       cron.New(),
		controller: controller,
		interval:   time.Duration(intervalMin) * time.Minute,
	}
}

// Start begins the periodic refresh job.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	entry, err := s.cron.AddFunc(spec, s.controller.Refresh)
	if err != nil {
		return fmt.Errorf("scheduling refresh: %w", err)
	}
	s.entry = entry

	s.cron.Start()
	log.Printf("Auto-refresh scheduled every %s", s.interval)
	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running
// refresh job to return.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Auto-refresh scheduler stopped")
}

// NextRun returns the next scheduled refresh time, or nil when the
// scheduler is not running.
func (s *Scheduler) NextRun() *time.Time {
	entry := s.cron.Entry(s.entry)
	if entry.Next.IsZero() {
		return nil
	}
	return &entry.Next
}
