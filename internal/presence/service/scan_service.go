package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

// ScanService is the presence engine: given a card scan it decides
// accept/reject against the person's stored state and records the
// transition.
type ScanService struct {
	people   store.PersonStore
	cooldown time.Duration
	locks    *cardLocks

	// now is swapped out by tests.
	now func() time.Time
}

func NewScanService(people store.PersonStore, cooldown time.Duration) *ScanService {
	if cooldown <= 0 {
		cooldown = 300 * time.Second
	}
	return &ScanService{
		people:   people,
		cooldown: cooldown,
		locks:    newCardLocks(),
		now:      time.Now,
	}
}

// ProcessScan resolves one scan of cardID. The returned ScanResult carries
// one of three expected outcomes (CARD_UNKNOWN, COOLDOWN, SUCCESS); an error
// is returned only for storage failures or a blank card ID.
//
// The per-card lock makes the cooldown check and the state flip act on a
// single consistent snapshot: of N simultaneous scans of one card, exactly
// one can accept and append a log entry. Scans of different cards never
// contend here.
func (s *ScanService) ProcessScan(ctx context.Context, cardID string) (types.ScanResult, error) {
	cardID = NormalizeCardID(cardID)
	if cardID == "" {
		return types.ScanResult{}, ErrInvalidCardID
	}

	unlock := s.locks.lock(cardID)
	defer unlock()

	person, err := s.people.PersonByCardID(ctx, cardID)
	if errors.Is(err, store.ErrNotFound) {
		return types.ScanResult{Status: types.ScanCardUnknown, CardID: cardID}, nil
	}
	if err != nil {
		return types.ScanResult{}, err
	}

	now := s.now().UTC()
	elapsed := now.Sub(person.LastActionTime.UTC())

	if elapsed < s.cooldown {
		// Exactly at the boundary is accepted; the check is strict less-than.
		remaining := int64((s.cooldown - elapsed) / time.Second)
		if remaining < 0 {
			remaining = 0
		}
		return types.ScanResult{
			Status:           types.ScanCooldown,
			CardID:           cardID,
			PersonID:         person.ID,
			DisplayName:      person.DisplayName(),
			RemainingSeconds: remaining,
		}, nil
	}

	action := types.ActionIn
	if person.IsInside {
		action = types.ActionOut
	}

	if _, err := s.people.ApplyTransition(ctx, person.ID, now, action); err != nil {
		return types.ScanResult{}, err
	}

	return types.ScanResult{
		Status:      types.ScanSuccess,
		CardID:      cardID,
		PersonID:    person.ID,
		DisplayName: person.DisplayName(),
		Action:      action,
	}, nil
}

// NormalizeCardID trims surrounding whitespace and uppercases the card
// identifier, matching how the scanner firmware reports UIDs.
func NormalizeCardID(cardID string) string {
	return strings.ToUpper(strings.TrimSpace(cardID))
}
