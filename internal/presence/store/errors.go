package store

import "errors"

var (
	// ErrNotFound is returned when no person matches the given card ID or
	// person ID.
	ErrNotFound = errors.New("store: person not found")

	// ErrDuplicateCard is returned when registering a card ID that already
	// belongs to someone.
	ErrDuplicateCard = errors.New("store: card already registered")
)
