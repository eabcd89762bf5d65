// Package stats aggregates alarm occurrence records into the personal
// analytics the app surfaces: average wake time, snooze frequency and
// dismissal success rate.
package stats

import (
	"fmt"
	"math"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// AverageWakeTime returns the mean scheduled wake time ("HH:MM") over
// every recorded occurrence whose alarm still exists. ok is false when
// no occurrence can be resolved to an alarm.
func AverageWakeTime(records []models.AlarmStat, alarms []models.Alarm) (string, bool) {
	byID := make(map[string]models.Alarm, len(alarms))
	for _, a := range alarms {
		byID[a.ID] = a
	}

	total, count := 0, 0
	for _, rec := range records {
		alarm, ok := byID[rec.AlarmID]
		if !ok {
			continue
		}
		hour, minute, err := models.ParseClock(alarm.Time)
		if err != nil {
			continue
		}
		total += hour*60 + minute
		count++
	}
	if count == 0 {
		return "", false
	}
	avg := int(math.Round(float64(total) / float64(count)))
	return fmt.Sprintf("%02d:%02d", avg/60, avg%60), true
}

// AverageSnoozeCount returns the mean snooze count per occurrence,
// rounded to one decimal.
func AverageSnoozeCount(records []models.AlarmStat) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, rec := range records {
		total += rec.SnoozeCount
	}
	return math.Round(float64(total)/float64(len(records))*10) / 10
}

// SuccessRate returns the percentage of occurrences that were
// dismissed, rounded to the nearest whole percent.
func SuccessRate(records []models.AlarmStat) int {
	if len(records) == 0 {
		return 0
	}
	dismissed := 0
	for _, rec := range records {
		if rec.Dismissed {
			dismissed++
		}
	}
	return int(math.Round(float64(dismissed) / float64(len(records)) * 100))
}

// Counts returns how many occurrences were dismissed vs missed.
func Counts(records []models.AlarmStat) (dismissed, missed int) {
	for _, rec := range records {
		if rec.Dismissed {
			dismissed++
		} else {
			missed++
		}
	}
	return dismissed, missed
}
