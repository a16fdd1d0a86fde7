package service_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/service"
	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/store/memory"
)

func silentLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestHeartbeatPruner_DisabledWhenRetentionZero(t *testing.T) {
	hs := memory.NewHeartbeatStore()
	pruner := service.NewHeartbeatPruner(hs, service.PrunerConfig{
		RetentionDays: 0,
		IntervalHours: 1,
	}, silentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pruner.Start(ctx)
	// Stop should return immediately without error.
	pruner.Stop()
}

func TestHeartbeatPruner_PrunesOldRecords(t *testing.T) {
	hs := memory.NewHeartbeatStore()
	ctx := context.Background()

	old := store.HeartbeatRecord{
		ScannerID:  "scanner-old",
		ReceivedAt: time.Now().UTC().AddDate(0, 0, -40),
	}
	if err := hs.RecordHeartbeat(ctx, old); err != nil {
		t.Fatalf("insert old: %v", err)
	}

	recent := store.HeartbeatRecord{
		ScannerID:  "scanner-recent",
		ReceivedAt: time.Now().UTC().AddDate(0, 0, -1),
	}
	if err := hs.RecordHeartbeat(ctx, recent); err != nil {
		t.Fatalf("insert recent: %v", err)
	}

	// Prune directly via the store (same operation the pruner calls).
	cutoff := time.Now().UTC().AddDate(0, 0, -30)
	deleted, err := hs.PruneOlderThan(ctx, cutoff)
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 pruned, got %d", deleted)
	}

	records := hs.Records()
	if len(records) != 1 || records[0].ScannerID != "scanner-recent" {
		t.Errorf("expected only the recent record to survive, got %+v", records)
	}
}

func TestHeartbeatPruner_StopIsIdempotent(t *testing.T) {
	hs := memory.NewHeartbeatStore()
	pruner := service.NewHeartbeatPruner(hs, service.PrunerConfig{
		RetentionDays: 30,
		IntervalHours: 1,
	}, silentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	pruner.Start(ctx)

	cancel()
	// Multiple stops should not panic.
	pruner.Stop()
	pruner.Stop()
}
