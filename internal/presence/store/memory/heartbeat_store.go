package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/store"
)

// HeartbeatStore is an in-memory append-only log of scanner heartbeats,
// for tests and dev environments.
type HeartbeatStore struct {
	mu      sync.Mutex
	records []store.HeartbeatRecord
}

func NewHeartbeatStore() *HeartbeatStore {
	return &HeartbeatStore{}
}

func (s *HeartbeatStore) RecordHeartbeat(_ context.Context, rec store.HeartbeatRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = time.Now().UTC()
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *HeartbeatStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var deleted int64
	for _, r := range s.records {
		if r.ReceivedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return deleted, nil
}

// Records returns a copy of all stored heartbeats. Test-only helper.
func (s *HeartbeatStore) Records() []store.HeartbeatRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.HeartbeatRecord, len(s.records))
	copy(out, s.records)
	return out
}
