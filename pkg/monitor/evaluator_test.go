package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/clock"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// monday0730 is within the matching minute of a 07:30 alarm.
var monday0730 = time.Date(2026, 8, 31, 7, 30, 15, 0, time.Local)

func mondayAlarm() models.Alarm {
	return models.Alarm{
		ID:          "alarm-1",
		Time:        "07:30",
		Days:        models.Days{Monday: true},
		Enabled:     true,
		MissionType: models.MissionMath,
		SoundID:     "default",
	}
}

func TestShouldTrigger(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Alarm)
		now    time.Time
		want   bool
	}{
		{
			name: "due within matching minute",
			now:  monday0730,
			want: true,
		},
		{
			name: "due at start of minute",
			now:  monday0730.Truncate(time.Minute),
			want: true,
		},
		{
			name: "due at end of minute",
			now:  monday0730.Truncate(time.Minute).Add(59 * time.Second),
			want: true,
		},
		{
			name:   "disabled never triggers",
			mutate: func(a *models.Alarm) { a.Enabled = false },
			now:    monday0730,
			want:   false,
		},
		{
			name: "wrong minute",
			now:  monday0730.Add(time.Minute),
			want: false,
		},
		{
			name: "wrong weekday",
			now:  monday0730.AddDate(0, 0, 1),
			want: false,
		},
		{
			name:   "malformed time is never due",
			mutate: func(a *models.Alarm) { a.Time = "7h30" },
			now:    monday0730,
			want:   false,
		},
		{
			name:   "non-numeric time is never due",
			mutate: func(a *models.Alarm) { a.Time = "xx:yy" },
			now:    monday0730,
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alarm := mondayAlarm()
			if tt.mutate != nil {
				tt.mutate(&alarm)
			}
			tracker := NewCompletionTracker(clock.Fixed{T: tt.now})
			assert.Equal(t, tt.want, ShouldTrigger(alarm, tt.now, tracker))
		})
	}
}

func TestShouldTriggerCompletionGuard(t *testing.T) {
	alarm := mondayAlarm()
	tracker := NewCompletionTracker(clock.Fixed{T: monday0730})

	assert.True(t, ShouldTrigger(alarm, monday0730, tracker))

	// Once dismissed today, repeated polls inside the same minute stay
	// quiet.
	tracker.MarkCompleted(alarm.ID)
	assert.False(t, ShouldTrigger(alarm, monday0730, tracker))
	assert.False(t, ShouldTrigger(alarm, monday0730.Add(30*time.Second), tracker))

	// After the midnight reset the next matching window triggers again.
	tracker.ResetAll()
	assert.True(t, ShouldTrigger(alarm, monday0730, tracker))
}

func TestShouldTriggerCompletionExpiresWithDate(t *testing.T) {
	alarm := mondayAlarm()
	now := monday0730
	clk := clock.Func(func() time.Time { return now })
	tracker := NewCompletionTracker(clk)

	tracker.MarkCompleted(alarm.ID)
	assert.False(t, ShouldTrigger(alarm, now, tracker))

	// A week later the mark is stale even without an explicit reset.
	now = now.AddDate(0, 0, 7)
	assert.True(t, ShouldTrigger(alarm, now, tracker))
}
