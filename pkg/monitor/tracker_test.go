package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/clock"
)

func TestCompletionTrackerMarks(t *testing.T) {
	now := time.Date(2026, 8, 31, 7, 30, 0, 0, time.Local)
	tracker := NewCompletionTracker(clock.Fixed{T: now})

	assert.False(t, tracker.IsCompletedToday("a"))
	tracker.MarkCompleted("a")
	assert.True(t, tracker.IsCompletedToday("a"))
	assert.False(t, tracker.IsCompletedToday("b"))

	tracker.ResetAll()
	assert.False(t, tracker.IsCompletedToday("a"))
}

func TestCompletionTrackerIgnoresEmptyID(t *testing.T) {
	tracker := NewCompletionTracker(clock.Fixed{T: time.Now()})
	tracker.MarkCompleted("")
	assert.False(t, tracker.IsCompletedToday(""))
}

func TestCompletionTrackerDateRollover(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 59, 0, 0, time.Local)
	clk := clock.Func(func() time.Time { return now })
	tracker := NewCompletionTracker(clk)

	tracker.MarkCompleted("a")
	assert.True(t, tracker.IsCompletedToday("a"))

	// The mark goes stale the moment the local date changes, even
	// before the midnight timer clears it.
	now = now.Add(2 * time.Minute)
	assert.False(t, tracker.IsCompletedToday("a"))
}

func TestMidnightResetTimerLifecycle(t *testing.T) {
	tracker := NewCompletionTracker(clock.System{})
	tracker.StartMidnightReset()
	// Re-arming replaces the timer instead of leaking one.
	tracker.StartMidnightReset()
	tracker.StopMidnightReset()
	// Stopping twice is harmless.
	tracker.StopMidnightReset()
}

func TestNextMidnight(t *testing.T) {
	now := time.Date(2026, 8, 31, 22, 15, 42, 0, time.Local)
	mid := nextMidnight(now)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local), mid)
	assert.True(t, mid.After(now))

	// Just after midnight the next reset is still a full day away.
	early := time.Date(2026, 8, 31, 0, 0, 1, 0, time.Local)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local), nextMidnight(early))
}
