package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

// PresenceStore keeps people and their logs in process memory. It implements
// both store.PersonStore and store.LogStore and is intended for tests and
// dev environments.
type PresenceStore struct {
	mu        sync.Mutex
	people    map[string]types.Person // by person ID
	byCard    map[string]string       // card ID -> person ID
	logs      []types.LogEntry
	nextLogID int64
}

func NewPresenceStore() *PresenceStore {
	return &PresenceStore{
		people:    make(map[string]types.Person),
		byCard:    make(map[string]string),
		nextLogID: 1,
	}
}

func (s *PresenceStore) CreatePerson(_ context.Context, p types.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byCard[p.CardID]; exists {
		return store.ErrDuplicateCard
	}
	s.people[p.ID] = p
	s.byCard[p.CardID] = p.ID
	return nil
}

func (s *PresenceStore) PersonByCardID(_ context.Context, cardID string) (types.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byCard[cardID]
	if !ok {
		return types.Person{}, store.ErrNotFound
	}
	return s.people[id], nil
}

func (s *PresenceStore) PersonByID(_ context.Context, id string) (types.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.people[id]
	if !ok {
		return types.Person{}, store.ErrNotFound
	}
	return p, nil
}

func (s *PresenceStore) ListPeople(_ context.Context) ([]types.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Person, 0, len(s.people))
	for _, p := range s.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (s *PresenceStore) ApplyTransition(_ context.Context, personID string, at time.Time, action types.Action) (types.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.people[personID]
	if !ok {
		return types.LogEntry{}, store.ErrNotFound
	}

	p.IsInside = action == types.ActionIn
	p.LastActionTime = at.UTC()
	s.people[personID] = p

	entry := types.LogEntry{
		ID:        s.nextLogID,
		PersonID:  personID,
		Timestamp: at.UTC(),
		Action:    action,
	}
	s.nextLogID++
	s.logs = append(s.logs, entry)
	return entry, nil
}

func (s *PresenceStore) LogsForPerson(_ context.Context, personID string, order store.Order) ([]types.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.LogEntry
	for _, e := range s.logs {
		if e.PersonID == personID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if order == store.OrderDesc {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (s *PresenceStore) RecentLogs(_ context.Context, limit int) ([]store.PersonLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.PersonLogEntry, 0, len(s.logs))
	for _, e := range s.logs {
		p := s.people[e.PersonID]
		out = append(out, store.PersonLogEntry{
			LogEntry:  e,
			FirstName: p.FirstName,
			LastName:  p.LastName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Logs returns a copy of every log entry in append order. Test-only helper.
func (s *PresenceStore) Logs() []types.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.LogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}
