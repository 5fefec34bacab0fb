// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/cwahlfeldt/bulk-post-importer/internal/staging"
)

// StagingCleanupScheduler periodically purges expired staged imports.
// Expired rows are also deleted lazily on read; this sweeps the ones
// nobody ever comes back for.
type StagingCleanupScheduler struct {
	store    *staging.Store
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewStagingCleanupScheduler creates a scheduler with a cron-format
// schedule (e.g. "0 * * * *" for hourly).
func NewStagingCleanupScheduler(store *staging.Store, schedule string) *StagingCleanupScheduler {
	return &StagingCleanupScheduler{
		store:    store,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins periodic cleanup.
func (s *StagingCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runCleanup)
	if err != nil {
		return fmt.Errorf("failed to schedule staging cleanup: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Staging cleanup scheduled: %s", s.schedule)

	return nil
}

// Stop halts the scheduler, waiting for an in-flight run to finish.
func (s *StagingCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
}

func (s *StagingCleanupScheduler) runCleanup() {
	purged, err := s.store.PurgeExpired()
	if err != nil {
		log.Printf("Staging cleanup failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Staging cleanup removed %d expired entries", purged)
	}
}
