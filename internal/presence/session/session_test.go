package session_test

import (
	"testing"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/session"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func entry(action types.Action, at time.Time) types.LogEntry {
	return types.LogEntry{PersonID: "p1", Timestamp: at, Action: action}
}

func TestReconstruct_ClosedAndOpenSession(t *testing.T) {
	t0 := base
	t1 := base.Add(45 * time.Minute)
	t2 := base.Add(2 * time.Hour)
	now := base.Add(3 * time.Hour)

	entries := []types.LogEntry{
		entry(types.ActionIn, t0),
		entry(types.ActionOut, t1),
		entry(types.ActionIn, t2),
	}

	sessions := session.Reconstruct(entries, now)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	// Most recent first: the open session leads.
	cur := sessions[0]
	if !cur.IsCurrent {
		t.Error("expected first session to be current")
	}
	if cur.End != nil {
		t.Errorf("expected open session end=nil, got %v", cur.End)
	}
	if !cur.Start.Equal(t2) {
		t.Errorf("expected open session start=%v, got %v", t2, cur.Start)
	}
	if cur.Duration != now.Sub(t2) {
		t.Errorf("expected open duration %v, got %v", now.Sub(t2), cur.Duration)
	}

	closed := sessions[1]
	if closed.IsCurrent {
		t.Error("expected second session to be finalized")
	}
	if closed.End == nil || !closed.End.Equal(t1) {
		t.Errorf("expected closed session end=%v, got %v", t1, closed.End)
	}
	if closed.Duration != t1.Sub(t0) {
		t.Errorf("expected closed duration %v, got %v", t1.Sub(t0), closed.Duration)
	}
}

func TestReconstruct_RepeatedInIgnored(t *testing.T) {
	t0 := base
	t1 := base.Add(10 * time.Minute)
	t2 := base.Add(30 * time.Minute)

	entries := []types.LogEntry{
		entry(types.ActionIn, t0),
		entry(types.ActionIn, t1), // corrupt: no intervening OUT
		entry(types.ActionOut, t2),
	}

	sessions := session.Reconstruct(entries, base.Add(time.Hour))
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if !sessions[0].Start.Equal(t0) {
		t.Errorf("expected start=%v (first IN kept), got %v", t0, sessions[0].Start)
	}
	if sessions[0].End == nil || !sessions[0].End.Equal(t2) {
		t.Errorf("expected end=%v, got %v", t2, sessions[0].End)
	}
}

func TestReconstruct_OrphanedOutIgnored(t *testing.T) {
	entries := []types.LogEntry{
		entry(types.ActionOut, base), // no matching IN
		entry(types.ActionIn, base.Add(5 * time.Minute)),
		entry(types.ActionOut, base.Add(15 * time.Minute)),
	}

	sessions := session.Reconstruct(entries, base.Add(time.Hour))
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if got := sessions[0].Duration; got != 10*time.Minute {
		t.Errorf("expected duration 10m, got %v", got)
	}
}

func TestReconstruct_EmptyLog(t *testing.T) {
	sessions := session.Reconstruct(nil, base)
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}

	sum := session.Summarize(sessions)
	if sum.FinalizedSessions != 0 || sum.Total != 0 || sum.TotalWithCurrent != 0 {
		t.Errorf("expected zero summary, got %+v", sum)
	}
	if got := session.FormatDuration(sum.Total); got != "0s" {
		t.Errorf("expected total to format as 0s, got %q", got)
	}
}

func TestReconstruct_SortedMostRecentFirst(t *testing.T) {
	entries := []types.LogEntry{
		entry(types.ActionIn, base),
		entry(types.ActionOut, base.Add(time.Hour)),
		entry(types.ActionIn, base.Add(2*time.Hour)),
		entry(types.ActionOut, base.Add(3*time.Hour)),
		entry(types.ActionIn, base.Add(4*time.Hour)),
		entry(types.ActionOut, base.Add(5*time.Hour)),
	}

	sessions := session.Reconstruct(entries, base.Add(6*time.Hour))
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].Start.After(sessions[i-1].Start) {
			t.Errorf("sessions not sorted descending at index %d", i)
		}
	}
}

func TestSummarize_TotalsAndCurrent(t *testing.T) {
	now := base.Add(4 * time.Hour)
	entries := []types.LogEntry{
		entry(types.ActionIn, base),
		entry(types.ActionOut, base.Add(time.Hour)), // 1h closed
		entry(types.ActionIn, base.Add(2*time.Hour)),
		entry(types.ActionOut, base.Add(2*time.Hour+30*time.Minute)), // 30m closed
		entry(types.ActionIn, base.Add(3*time.Hour)),                 // open, 1h so far
	}

	sum := session.Summarize(session.Reconstruct(entries, now))
	if sum.FinalizedSessions != 2 {
		t.Errorf("expected 2 finalized sessions, got %d", sum.FinalizedSessions)
	}
	if want := 90 * time.Minute; sum.Total != want {
		t.Errorf("expected total %v, got %v", want, sum.Total)
	}
	if want := 150 * time.Minute; sum.TotalWithCurrent != want {
		t.Errorf("expected total-with-current %v, got %v", want, sum.TotalWithCurrent)
	}
}
