package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/skyschedule/internal/skyq"
)

// Snapshot represents the latest schedule available to the UI.
type Snapshot struct {
	Entries             []skyq.Entry
	HasSchedule         bool
	LastUpdated         time.Time
	LastSuccess         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the box has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored schedule. When err is non-nil the previous
// schedule is kept but the error is recorded for visibility.
func (s *Store) Update(entries []skyq.Entry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.LastUpdated = now
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Entries = cloneEntries(entries)
	s.snapshot.HasSchedule = true
	s.snapshot.LastSuccess = now
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Entries = cloneEntries(s.snapshot.Entries)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneEntries(entries []skyq.Entry) []skyq.Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]skyq.Entry, len(entries))
	copy(dup, entries)
	return dup
}
