package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/cardtrack/presence-server/internal/db"
	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

type PersonStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewPersonStore(db *sql.DB, writer *dbpkg.Worker) *PersonStore {
	return &PersonStore{db: db, writer: writer}
}

const personColumns = `id, card_id, first_name, last_name, is_inside, last_action_ms`

func scanPerson(row *sql.Row) (types.Person, error) {
	var p types.Person
	var inside int
	var lastActionMs int64

	err := row.Scan(&p.ID, &p.CardID, &p.FirstName, &p.LastName, &inside, &lastActionMs)
	if err == sql.ErrNoRows {
		return types.Person{}, store.ErrNotFound
	}
	if err != nil {
		return types.Person{}, err
	}

	p.IsInside = inside == 1
	p.LastActionTime = time.UnixMilli(lastActionMs).UTC()
	return p, nil
}

func (s *PersonStore) CreatePerson(ctx context.Context, p types.Person) error {
	nowMs := time.Now().UTC().UnixMilli()
	lastActionMs := p.LastActionTime.UTC().UnixMilli()

	var inside int
	if p.IsInside {
		inside = 1
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// The writer serializes all mutations, so check-then-insert inside
		// one transaction cannot race with another registration.
		var existing string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM people WHERE card_id = ?;`, p.CardID,
		).Scan(&existing)
		if err == nil {
			return store.ErrDuplicateCard
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("CreatePerson check card: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO people(
  id, card_id, first_name, last_name, is_inside, last_action_ms,
  created_at_ms, updated_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`, p.ID, p.CardID, p.FirstName, p.LastName, inside, lastActionMs, nowMs, nowMs); err != nil {
			return fmt.Errorf("CreatePerson insert: %w", err)
		}
		return nil
	})
}

func (s *PersonStore) PersonByCardID(ctx context.Context, cardID string) (types.Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE card_id = ?;`, cardID)
	p, err := scanPerson(row)
	if err != nil && err != store.ErrNotFound {
		return types.Person{}, fmt.Errorf("PersonByCardID: %w", err)
	}
	return p, err
}

func (s *PersonStore) PersonByID(ctx context.Context, id string) (types.Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE id = ?;`, id)
	p, err := scanPerson(row)
	if err != nil && err != store.ErrNotFound {
		return types.Person{}, fmt.Errorf("PersonByID: %w", err)
	}
	return p, err
}

func (s *PersonStore) ListPeople(ctx context.Context) ([]types.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+personColumns+` FROM people ORDER BY last_name, first_name;`)
	if err != nil {
		return nil, fmt.Errorf("ListPeople query: %w", err)
	}
	defer rows.Close()

	var out []types.Person
	for rows.Next() {
		var p types.Person
		var inside int
		var lastActionMs int64
		if err := rows.Scan(&p.ID, &p.CardID, &p.FirstName, &p.LastName, &inside, &lastActionMs); err != nil {
			return nil, fmt.Errorf("ListPeople scan: %w", err)
		}
		p.IsInside = inside == 1
		p.LastActionTime = time.UnixMilli(lastActionMs).UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

// ApplyTransition updates the person's presence snapshot and appends the log
// row in one transaction, mirroring how the log and the denormalized flag
// must never diverge.
func (s *PersonStore) ApplyTransition(ctx context.Context, personID string, at time.Time, action types.Action) (types.LogEntry, error) {
	atMs := at.UTC().UnixMilli()

	var inside int
	if action == types.ActionIn {
		inside = 1
	}

	var entry types.LogEntry
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE people
SET is_inside      = ?,
    last_action_ms = ?,
    updated_at_ms  = ?
WHERE id = ?;
`, inside, atMs, atMs, personID)
		if err != nil {
			return fmt.Errorf("ApplyTransition update person: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrNotFound
		}

		ins, err := tx.ExecContext(ctx, `
INSERT INTO presence_logs(person_id, ts_ms, action) VALUES (?, ?, ?);
`, personID, atMs, string(action))
		if err != nil {
			return fmt.Errorf("ApplyTransition insert log: %w", err)
		}

		id, err := ins.LastInsertId()
		if err != nil {
			return fmt.Errorf("ApplyTransition log id: %w", err)
		}

		entry = types.LogEntry{
			ID:        id,
			PersonID:  personID,
			Timestamp: time.UnixMilli(atMs).UTC(),
			Action:    action,
		}
		return nil
	})
	if err != nil {
		return types.LogEntry{}, err
	}
	return entry, nil
}
