package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTimerValidation(t *testing.T) {
	now := time.Now()

	_, err := StartTimer(-5, now)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = StartTimer(0, now)
	require.Error(t, err)

	timer, err := StartTimer(5, now)
	require.NoError(t, err)
	assert.True(t, timer.Active)
	assert.Equal(t, 5, timer.DurationSeconds)
}

func TestTimerLazyExpiry(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timer, err := StartTimer(5, start)
	require.NoError(t, err)

	snap := timer.SnapshotAt(start)
	assert.True(t, snap.Active)
	assert.Equal(t, 5, snap.RemainingSeconds)
	assert.False(t, snap.Completed)

	snap = timer.SnapshotAt(start.Add(3 * time.Second))
	assert.True(t, snap.Active)
	assert.Equal(t, 2, snap.RemainingSeconds)

	// The read itself flips the timer once the clock has run out.
	snap = timer.SnapshotAt(start.Add(6 * time.Second))
	assert.False(t, snap.Active)
	assert.True(t, snap.Completed)
	assert.Equal(t, 0, snap.RemainingSeconds)

	// The flip is one-way.
	snap = timer.SnapshotAt(start.Add(10 * time.Second))
	assert.False(t, snap.Active)
	assert.True(t, snap.Completed)
}

func TestTimerCompletionNoticeIsOneShot(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timer, err := StartTimer(5, start)
	require.NoError(t, err)

	// Not yet expired: no notice.
	assert.Empty(t, timer.ConsumeCompletionNotice(start.Add(2*time.Second)))

	after := start.Add(6 * time.Second)
	notice := timer.ConsumeCompletionNotice(after)
	require.NotEmpty(t, notice)
	assert.Contains(t, notice, "5 second")

	// Exactly once.
	assert.Empty(t, timer.ConsumeCompletionNotice(after))
	assert.Empty(t, timer.ConsumeCompletionNotice(after.Add(time.Minute)))
}

func TestTimerRestartRearmsNotice(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timer, err := StartTimer(5, start)
	require.NoError(t, err)
	require.NotEmpty(t, timer.ConsumeCompletionNotice(start.Add(6*time.Second)))

	// A new start resets the clock and the one-shot guard.
	restarted, err := StartTimer(3, start.Add(10*time.Second))
	require.NoError(t, err)

	snap := restarted.SnapshotAt(start.Add(11 * time.Second))
	assert.True(t, snap.Active)
	assert.Equal(t, 2, snap.RemainingSeconds)
	assert.NotEmpty(t, restarted.ConsumeCompletionNotice(start.Add(14*time.Second)))
}
