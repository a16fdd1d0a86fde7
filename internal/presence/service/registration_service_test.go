package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cardtrack/presence-server/internal/presence/service"
	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/store/memory"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

func TestRegister_NormalizesAndDefaults(t *testing.T) {
	svc := service.NewRegistrationService(memory.NewPresenceStore())

	p, err := svc.Register(context.Background(), "  04ab12cd ", " Ana ", " Popescu ")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if p.ID == "" {
		t.Error("expected a generated person id")
	}
	if p.CardID != "04AB12CD" {
		t.Errorf("expected normalized card id, got %q", p.CardID)
	}
	if p.FirstName != "Ana" || p.LastName != "Popescu" {
		t.Errorf("expected trimmed names, got %q %q", p.FirstName, p.LastName)
	}
	if p.IsInside {
		t.Error("new people start outside")
	}
	if !p.LastActionTime.Equal(types.SentinelTime) {
		t.Errorf("expected sentinel last action time, got %v", p.LastActionTime)
	}
}

func TestRegister_DuplicateCard(t *testing.T) {
	svc := service.NewRegistrationService(memory.NewPresenceStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "04AB12CD", "Ana", "Popescu"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Same card after normalization, different person.
	_, err := svc.Register(ctx, "04ab12cd", "Mihai", "Ionescu")
	if !errors.Is(err, store.ErrDuplicateCard) {
		t.Fatalf("expected ErrDuplicateCard, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := service.NewRegistrationService(memory.NewPresenceStore())

	_, err := svc.Register(context.Background(), "", "Ana", "")
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.FieldErrors["card_uid"]; !ok {
		t.Error("expected card_uid field error")
	}
	if _, ok := verr.FieldErrors["last_name"]; !ok {
		t.Error("expected last_name field error")
	}
	if _, ok := verr.FieldErrors["first_name"]; ok {
		t.Error("did not expect first_name field error")
	}
}
