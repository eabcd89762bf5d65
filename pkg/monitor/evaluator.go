package monitor

import (
	"time"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// Completions answers whether an alarm was already dismissed today.
type Completions interface {
	IsCompletedToday(alarmID string) bool
}

// ShouldTrigger decides whether an alarm is due at the given moment:
// enabled, exact hour:minute match, today's weekday flag set, and not
// already completed today. The whole matching minute counts; the
// completion mark is what keeps an alarm from firing again within it.
// A malformed time string never triggers.
func ShouldTrigger(alarm models.Alarm, now time.Time, done Completions) bool {
	if !alarm.Enabled {
		return false
	}
	hour, minute, err := models.ParseClock(alarm.Time)
	if err != nil {
		return false
	}
	if now.Hour() != hour || now.Minute() != minute {
		return false
	}
	if !alarm.Days.On(now.Weekday()) {
		return false
	}
	if done != nil && done.IsCompletedToday(alarm.ID) {
		return false
	}
	return true
}
