package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeedDev inserts a couple of registered people so a fresh dev database has
// cards to scan against. Safe to run repeatedly — existing card IDs are left
// untouched.
func SeedDev(ctx context.Context, db *sql.DB) error {
	now := time.Now().UTC().UnixMilli()

	seed := []struct {
		cardID    string
		firstName string
		lastName  string
	}{
		{"04AB12CD", "Ana", "Popescu"},
		{"04FF34EE", "Mihai", "Ionescu"},
	}

	for _, p := range seed {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO people(
  id, card_id, first_name, last_name, is_inside, last_action_ms,
  created_at_ms, updated_at_ms
) VALUES (?, ?, ?, ?, 0, 0, ?, ?);
`, uuid.NewString(), p.cardID, p.firstName, p.lastName, now, now); err != nil {
			return fmt.Errorf("seed person %s: %w", p.cardID, err)
		}
	}

	return nil
}
