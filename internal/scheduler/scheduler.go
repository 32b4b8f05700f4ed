package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/climasense/climasense/internal/globalaqi"
	"github.com/climasense/climasense/internal/store"
)

// Scheduler periodically refreshes the global AQI snapshot into the
// store so the map endpoint can serve without blocking on the publicly
// rate-limited provider.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    globalaqi.Source
	snapshots *store.SnapshotStore
	interval  time.Duration
}

// New creates a Scheduler.
func New(source globalaqi.Source, snapshots *store.SnapshotStore, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		snapshots: snapshots,
		interval:  interval,
	}
}

// Start schedules the periodic refresh, runs one immediately, and
// starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().StartImmediately().Do(s.refresh)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) refresh() {
	gen := s.snapshots.Begin()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snapshot, err := s.source.FetchSnapshot(ctx)
	if err != nil {
		log.Printf("scheduler: global AQI refresh failed: %v", err)
		return
	}
	if !s.snapshots.Complete(gen, snapshot) {
		log.Printf("scheduler: discarded stale global AQI snapshot (generation %d)", gen)
		return
	}
	log.Printf("scheduler: refreshed global AQI snapshot with %d locations", len(snapshot.Locations))
}
