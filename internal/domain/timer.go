package domain

import (
	"fmt"
	"time"
)

// TimerState is one countdown attached to a session. Expiry is computed
// from the wall clock at read time; nothing sleeps and no background
// goroutine ticks. Repeated status reads are how expiry becomes visible.
//
// Access is serialized by the session store, which keeps the lazy
// active-to-completed flip atomic with respect to concurrent reads.
type TimerState struct {
	Active             bool
	DurationSeconds    int
	StartedAt          time.Time
	Completed          bool
	CompletionNotified bool
}

// TimerSnapshot is the caller-facing view of a timer at one instant.
type TimerSnapshot struct {
	Active           bool `json:"active"`
	DurationSeconds  int  `json:"duration_seconds"`
	RemainingSeconds int  `json:"remaining_seconds"`
	Completed        bool `json:"completed"`
}

// StartTimer begins a countdown of the given length. Starting over an
// existing timer is the overwrite/cancel mechanism, so this always returns
// a fresh state. Durations must be positive.
func StartTimer(seconds int, now time.Time) (*TimerState, error) {
	if seconds <= 0 {
		return nil, &ValidationError{Field: "duration", Reason: "must be a positive number of seconds"}
	}
	return &TimerState{
		Active:          true,
		DurationSeconds: seconds,
		StartedAt:       now,
	}, nil
}

// RemainingAt returns the whole seconds left on the clock, floored at zero.
func (t *TimerState) RemainingAt(now time.Time) int {
	elapsed := int(now.Sub(t.StartedAt) / time.Second)
	remaining := t.DurationSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SnapshotAt computes the timer view for the given instant. If the timer
// has run out, the read itself flips it from active to completed.
func (t *TimerState) SnapshotAt(now time.Time) TimerSnapshot {
	remaining := t.RemainingAt(now)
	if t.Active && remaining == 0 {
		t.Active = false
		t.Completed = true
	}
	return TimerSnapshot{
		Active:           t.Active,
		DurationSeconds:  t.DurationSeconds,
		RemainingSeconds: remaining,
		Completed:        t.Completed,
	}
}

// ConsumeCompletionNotice returns the human-readable completion message
// exactly once per completion. Until the timer has expired, and after the
// notice has been consumed, it returns the empty string. Restarting the
// timer re-arms the notice.
func (t *TimerState) ConsumeCompletionNotice(now time.Time) string {
	t.SnapshotAt(now)
	if !t.Completed || t.CompletionNotified {
		return ""
	}
	t.CompletionNotified = true
	return fmt.Sprintf("Time's up! Your %d second timer is complete.", t.DurationSeconds)
}
