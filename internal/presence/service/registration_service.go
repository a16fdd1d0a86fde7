package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

// RegistrationService creates people. Registration is the only way a card ID
// enters the system; scans of unregistered cards are rejected by the engine.
type RegistrationService struct {
	people store.PersonStore
}

func NewRegistrationService(people store.PersonStore) *RegistrationService {
	return &RegistrationService{people: people}
}

// Register creates a person with the normalized card ID, IsInside=false and
// the sentinel LastActionTime so their first scan always passes cooldown.
// Returns a *ValidationError for missing fields and store.ErrDuplicateCard
// for an already-registered card.
func (s *RegistrationService) Register(ctx context.Context, cardID, firstName, lastName string) (types.Person, error) {
	cardID = NormalizeCardID(cardID)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	verr := &ValidationError{}
	if cardID == "" {
		verr.add("card_uid", "card UID is required")
	}
	if firstName == "" {
		verr.add("first_name", "first name is required")
	}
	if lastName == "" {
		verr.add("last_name", "last name is required")
	}
	if len(verr.FieldErrors) > 0 {
		return types.Person{}, verr
	}

	p := types.Person{
		ID:             uuid.NewString(),
		CardID:         cardID,
		FirstName:      firstName,
		LastName:       lastName,
		IsInside:       false,
		LastActionTime: types.SentinelTime,
	}

	if err := s.people.CreatePerson(ctx, p); err != nil {
		return types.Person{}, err
	}
	return p, nil
}
