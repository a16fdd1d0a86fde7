package service

import (
	"context"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/session"
	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

// DirectoryService answers the read-side questions: who is registered, who
// is inside, what happened recently, and how long has someone been present.
type DirectoryService struct {
	people store.PersonStore
	logs   store.LogStore

	now func() time.Time
}

func NewDirectoryService(people store.PersonStore, logs store.LogStore) *DirectoryService {
	return &DirectoryService{people: people, logs: logs, now: time.Now}
}

func (s *DirectoryService) ListPeople(ctx context.Context) ([]types.Person, error) {
	return s.people.ListPeople(ctx)
}

func (s *DirectoryService) RecentLogs(ctx context.Context, limit int) ([]store.PersonLogEntry, error) {
	return s.logs.RecentLogs(ctx, limit)
}

// ProfileView is one person's full presence picture: identity, reconstructed
// sessions (most recent first), and aggregate durations.
type ProfileView struct {
	Person   types.Person
	Sessions []session.Session
	Summary  session.Summary
}

// Profile rebuilds a person's sessions from their log. Returns
// store.ErrNotFound for an unknown person ID.
func (s *DirectoryService) Profile(ctx context.Context, personID string) (ProfileView, error) {
	person, err := s.people.PersonByID(ctx, personID)
	if err != nil {
		return ProfileView{}, err
	}

	entries, err := s.logs.LogsForPerson(ctx, personID, store.OrderAsc)
	if err != nil {
		return ProfileView{}, err
	}

	sessions := session.Reconstruct(entries, s.now().UTC())
	return ProfileView{
		Person:   person,
		Sessions: sessions,
		Summary:  session.Summarize(sessions),
	}, nil
}
