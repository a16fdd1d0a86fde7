package store

import (
	"context"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/types"
)

// Order selects the timestamp ordering for log reads: ascending for session
// reconstruction, descending for display.
type Order int

const (
	OrderAsc Order = iota
	OrderDesc
)

type PersonStore interface {
	// CreatePerson persists a new person. Returns ErrDuplicateCard if the
	// card ID is already registered.
	CreatePerson(ctx context.Context, p types.Person) error

	PersonByCardID(ctx context.Context, cardID string) (types.Person, error)
	PersonByID(ctx context.Context, id string) (types.Person, error)

	// ListPeople returns everyone ordered by last name (status board order).
	ListPeople(ctx context.Context) ([]types.Person, error)

	// ApplyTransition flips the person's presence flag, stamps
	// LastActionTime, and appends the matching log entry — all in one
	// atomic unit. Returns the appended entry.
	ApplyTransition(ctx context.Context, personID string, at time.Time, action types.Action) (types.LogEntry, error)
}

// PersonLogEntry is a log entry joined with the owner's display name, for
// the recent-activity listing.
type PersonLogEntry struct {
	types.LogEntry
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LogStore interface {
	LogsForPerson(ctx context.Context, personID string, order Order) ([]types.LogEntry, error)
	RecentLogs(ctx context.Context, limit int) ([]PersonLogEntry, error)
}

// HeartbeatRecord captures one health ping from a scanner device.
type HeartbeatRecord struct {
	ScannerID       string
	ReceivedAt      time.Time
	FirmwareVersion string
	UptimeSeconds   uint64
	IP              string
}

type HeartbeatStore interface {
	RecordHeartbeat(ctx context.Context, rec HeartbeatRecord) error
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
