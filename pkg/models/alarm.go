package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MissionType selects the challenge that gates alarm dismissal.
type MissionType string

const (
	MissionPhoto  MissionType = "photo"
	MissionMath   MissionType = "math"
	MissionPuzzle MissionType = "puzzle"
	MissionRandom MissionType = "random"
)

// Days holds one flag per weekday. An alarm rings only on days whose
// flag is set.
type Days struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// On reports whether the flag for the given weekday is set.
func (d Days) On(wd time.Weekday) bool {
	switch wd {
	case time.Monday:
		return d.Monday
	case time.Tuesday:
		return d.Tuesday
	case time.Wednesday:
		return d.Wednesday
	case time.Thursday:
		return d.Thursday
	case time.Friday:
		return d.Friday
	case time.Saturday:
		return d.Saturday
	case time.Sunday:
		return d.Sunday
	}
	return false
}

// Any reports whether at least one weekday is enabled.
func (d Days) Any() bool {
	return d.Monday || d.Tuesday || d.Wednesday || d.Thursday || d.Friday || d.Saturday || d.Sunday
}

// String renders the enabled days as a short comma-separated list, e.g. "Mon,Wed,Fri".
func (d Days) String() string {
	names := []struct {
		on    bool
		label string
	}{
		{d.Monday, "Mon"},
		{d.Tuesday, "Tue"},
		{d.Wednesday, "Wed"},
		{d.Thursday, "Thu"},
		{d.Friday, "Fri"},
		{d.Saturday, "Sat"},
		{d.Sunday, "Sun"},
	}
	var out []string
	for _, n := range names {
		if n.on {
			out = append(out, n.label)
		}
	}
	if len(out) == 0 {
		return "never"
	}
	return strings.Join(out, ",")
}

// Alarm is a user-defined recurring wake-up schedule.
type Alarm struct {
	ID          string      `json:"id" validate:"required"`
	Time        string      `json:"time" validate:"required"` // "HH:MM", 24h local wall-clock
	Days        Days        `json:"days"`
	Enabled     bool        `json:"enabled"`
	Label       string      `json:"label,omitempty" validate:"max=255"`
	MissionType MissionType `json:"missionType" validate:"required,oneof=photo math puzzle random"`
	SoundID     string      `json:"soundId" validate:"required"`
	Vibrate     bool        `json:"vibrate"`
}

// ParseClock parses an "HH:MM" 24-hour wall-clock string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hour, minute, nil
}

// Validate checks struct tags plus the clock-time format.
func (a *Alarm) Validate() error {
	if err := ValidateStruct(a); err != nil {
		return err
	}
	if _, _, err := ParseClock(a.Time); err != nil {
		return err
	}
	return nil
}

// NextRing returns the next moment at or after now when the alarm would
// ring, honoring its weekday flags. ok is false when the alarm is
// disabled, rings on no day, or its time does not parse.
func (a *Alarm) NextRing(now time.Time) (at time.Time, ok bool) {
	if !a.Enabled || !a.Days.Any() {
		return time.Time{}, false
	}
	hour, minute, err := ParseClock(a.Time)
	if err != nil {
		return time.Time{}, false
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	for i := 0; i < 8; i++ {
		candidate := day.AddDate(0, 0, i)
		if candidate.Before(now) {
			continue
		}
		if a.Days.On(candidate.Weekday()) {
			return candidate, true
		}
	}
	return time.Time{}, false
}
