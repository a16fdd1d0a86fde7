package types

import "time"

// SentinelTime is the initial LastActionTime for a newly registered person.
// Far enough in the past that the first real scan always clears the cooldown
// window.
var SentinelTime = time.Unix(0, 0).UTC()

type Person struct {
	ID        string `json:"id"`
	CardID    string `json:"card_uid"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// IsInside mirrors the action of the person's newest log entry
	// (IN = true, OUT = false), kept denormalized for O(1) status reads.
	IsInside bool `json:"is_inside"`

	// LastActionTime is the UTC time of the most recent accepted scan,
	// used only for cooldown computation.
	LastActionTime time.Time `json:"last_action_time"`
}

func (p Person) DisplayName() string {
	return p.FirstName + " " + p.LastName
}
