package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/cardtrack/presence-server/internal/db"
	"github.com/cardtrack/presence-server/internal/presence/store"
)

type HeartbeatStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewHeartbeatStore(db *sql.DB, writer *dbpkg.Worker) *HeartbeatStore {
	return &HeartbeatStore{db: db, writer: writer}
}

func (s *HeartbeatStore) RecordHeartbeat(ctx context.Context, rec store.HeartbeatRecord) error {
	scannerID := strings.TrimSpace(rec.ScannerID)
	if scannerID == "" {
		return nil
	}

	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = time.Now().UTC()
	}
	recvMs := rec.ReceivedAt.UTC().UnixMilli()

	var uptimeMs any
	if rec.UptimeSeconds != 0 {
		uptimeMs = int64(rec.UptimeSeconds) * 1000
	}

	fw := strings.TrimSpace(rec.FirmwareVersion)
	ip := strings.TrimSpace(rec.IP)

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO scanner_heartbeats(scanner_id, received_at_ms, fw_version, uptime_ms, ip)
VALUES (?, ?, ?, ?, ?);
`, scannerID, recvMs, fw, uptimeMs, ip); err != nil {
			return fmt.Errorf("RecordHeartbeat insert: %w", err)
		}
		return nil
	})
}

// PruneOlderThan deletes heartbeat rows received before the cutoff. Returns
// the number of rows deleted. Uses idx_scanner_heartbeats_time for an
// efficient range scan.
func (s *HeartbeatStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoffMs := cutoff.UTC().UnixMilli()

	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM scanner_heartbeats
WHERE received_at_ms < ?;
`, cutoffMs)
		if err != nil {
			return fmt.Errorf("PruneOlderThan: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}
