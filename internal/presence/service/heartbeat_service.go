package service

import (
	"context"
	"strings"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

// HeartbeatService records health pings from scanner devices.
type HeartbeatService struct {
	heartbeats store.HeartbeatStore
}

func NewHeartbeatService(hs store.HeartbeatStore) *HeartbeatService {
	return &HeartbeatService{heartbeats: hs}
}

func (s *HeartbeatService) Record(ctx context.Context, req types.HeartbeatRequest) (types.HeartbeatResponse, error) {
	scannerID := strings.TrimSpace(req.ScannerID)
	if scannerID == "" {
		return types.HeartbeatResponse{}, ErrInvalidScannerID
	}

	rec := store.HeartbeatRecord{
		ScannerID:       scannerID,
		ReceivedAt:      time.Now().UTC(),
		FirmwareVersion: req.FirmwareVersion,
		UptimeSeconds:   req.UptimeSeconds,
		IP:              req.IP,
	}

	if err := s.heartbeats.RecordHeartbeat(ctx, rec); err != nil {
		return types.HeartbeatResponse{}, err
	}

	return types.HeartbeatResponse{
		OK:         true,
		ScannerID:  scannerID,
		ServerTime: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}
