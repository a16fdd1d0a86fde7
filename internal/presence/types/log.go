package types

import "time"

// Action is the direction of an accepted transition.
type Action string

const (
	ActionIn  Action = "IN"
	ActionOut Action = "OUT"
)

// Opposite returns the action a successful scan should record next.
func (a Action) Opposite() Action {
	if a == ActionIn {
		return ActionOut
	}
	return ActionIn
}

// LogEntry is one accepted IN/OUT transition. Entries are append-only and
// never mutated or deleted.
type LogEntry struct {
	ID        int64     `json:"id"`
	PersonID  string    `json:"person_id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
}
