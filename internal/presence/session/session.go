// Package session derives presence sessions from a person's IN/OUT log.
// Reconstruction is a pure function of the log sequence — it performs no I/O
// and shares no state with the scan path.
package session

import (
	"sort"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/types"
)

// Session is one reconstructed interval of presence. Never persisted;
// recomputed on demand from the log.
type Session struct {
	Start    time.Time
	End      *time.Time // nil while the person is still inside
	Duration time.Duration

	// IsCurrent is true only for a trailing open session.
	IsCurrent bool
}

// Reconstruct pairs a person's log entries into sessions. Entries must be in
// ascending timestamp order.
//
// The engine only ever appends alternating actions, but stored data is not
// trusted to be clean: a repeated IN (start already open) and an orphaned OUT
// (no start open) are both skipped rather than failing the whole
// reconstruction, so one corrupt record cannot hide every other session.
//
// If the final entry leaves a start open, a trailing session with End=nil and
// Duration measured up to now is emitted. Results are sorted by Start
// descending (most recent first).
func Reconstruct(entries []types.LogEntry, now time.Time) []Session {
	var sessions []Session
	var open *time.Time

	for _, e := range entries {
		switch e.Action {
		case types.ActionIn:
			if open != nil {
				continue
			}
			t := e.Timestamp.UTC()
			open = &t
		case types.ActionOut:
			if open == nil {
				continue
			}
			end := e.Timestamp.UTC()
			sessions = append(sessions, Session{
				Start:    *open,
				End:      &end,
				Duration: end.Sub(*open),
			})
			open = nil
		}
	}

	if open != nil {
		sessions = append(sessions, Session{
			Start:     *open,
			Duration:  now.UTC().Sub(*open),
			IsCurrent: true,
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Start.After(sessions[j].Start)
	})

	return sessions
}

// Summary aggregates session durations for a person's profile.
type Summary struct {
	// FinalizedSessions counts closed sessions only.
	FinalizedSessions int

	// Total is the summed duration of finalized sessions.
	Total time.Duration

	// TotalWithCurrent adds the open session's duration, if one exists.
	TotalWithCurrent time.Duration
}

// Summarize computes aggregate durations. An empty session list yields a
// zero summary, not an error.
func Summarize(sessions []Session) Summary {
	var sum Summary
	for _, s := range sessions {
		if s.IsCurrent || s.End == nil {
			sum.TotalWithCurrent += s.Duration
			continue
		}
		sum.FinalizedSessions++
		sum.Total += s.Duration
	}
	sum.TotalWithCurrent += sum.Total
	return sum
}
