// Package store holds the most recent global AQI snapshot for serving.
// Only the latest snapshot is retained; there is no history.
package store

import (
	"sync"

	"github.com/climasense/climasense/internal/globalaqi"
)

// SnapshotStore is a concurrency-safe holder for the latest global AQI
// snapshot. Refreshes are generation-tokened so a slow fetch that
// resolves after a newer one cannot overwrite fresher data.
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot globalaqi.Snapshot
	present  bool

	nextGen    uint64
	appliedGen uint64
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Begin reserves a generation token for a refresh attempt.
func (s *SnapshotStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// Complete stores the snapshot for the given generation. Stale
// resolutions (a newer generation already applied) are discarded and
// reported as false.
func (s *SnapshotStore) Complete(gen uint64, snapshot globalaqi.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.appliedGen {
		return false
	}
	s.appliedGen = gen
	s.snapshot = snapshot
	s.present = true
	return true
}

// Latest returns the stored snapshot, if any.
func (s *SnapshotStore) Latest() (globalaqi.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.present
}
