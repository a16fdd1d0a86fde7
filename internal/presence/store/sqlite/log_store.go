package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

type LogStore struct {
	db *sql.DB
}

func NewLogStore(db *sql.DB) *LogStore {
	return &LogStore{db: db}
}

func (s *LogStore) LogsForPerson(ctx context.Context, personID string, order store.Order) ([]types.LogEntry, error) {
	dir := "ASC"
	if order == store.OrderDesc {
		dir = "DESC"
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, person_id, ts_ms, action
FROM presence_logs
WHERE person_id = ?
ORDER BY ts_ms `+dir+`, id `+dir+`;
`, personID)
	if err != nil {
		return nil, fmt.Errorf("LogsForPerson query: %w", err)
	}
	defer rows.Close()

	var out []types.LogEntry
	for rows.Next() {
		var e types.LogEntry
		var tsMs int64
		var action string
		if err := rows.Scan(&e.ID, &e.PersonID, &tsMs, &action); err != nil {
			return nil, fmt.Errorf("LogsForPerson scan: %w", err)
		}
		e.Timestamp = time.UnixMilli(tsMs).UTC()
		e.Action = types.Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *LogStore) RecentLogs(ctx context.Context, limit int) ([]store.PersonLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT l.id, l.person_id, l.ts_ms, l.action, p.first_name, p.last_name
FROM presence_logs l
JOIN people p ON p.id = l.person_id
ORDER BY l.ts_ms DESC, l.id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("RecentLogs query: %w", err)
	}
	defer rows.Close()

	var out []store.PersonLogEntry
	for rows.Next() {
		var e store.PersonLogEntry
		var tsMs int64
		var action string
		if err := rows.Scan(&e.ID, &e.PersonID, &tsMs, &action, &e.FirstName, &e.LastName); err != nil {
			return nil, fmt.Errorf("RecentLogs scan: %w", err)
		}
		e.Timestamp = time.UnixMilli(tsMs).UTC()
		e.Action = types.Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}
