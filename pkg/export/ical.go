// Package export renders the alarm collection as an iCalendar feed so
// wake-up schedules can be imported into calendar apps.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// WriteCalendar encodes every enabled alarm as a VEVENT with a weekly
// recurrence rule derived from its day flags. DTSTART is the alarm's
// next occurrence at or after now. Disabled alarms and alarms that can
// never ring are skipped.
func WriteCalendar(w io.Writer, alarms []models.Alarm, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//wake-up-quests-alarm//wakequest//EN")

	for _, alarm := range alarms {
		next, ok := alarm.NextRing(now)
		if !ok {
			continue
		}
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, alarm.ID)
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetDateTime(ical.PropDateTimeStart, next)
		summary := alarm.Label
		if summary == "" {
			summary = "Alarm " + alarm.Time
		}
		event.Props.SetText(ical.PropSummary, summary)
		event.Props.SetText(ical.PropDescription,
			fmt.Sprintf("Mission: %s, sound: %s", alarm.MissionType, alarm.SoundID))

		rule := ical.NewProp(ical.PropRecurrenceRule)
		rule.Value = "FREQ=WEEKLY;BYDAY=" + byDay(alarm.Days)
		event.Props.Set(rule)

		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// byDay renders day flags as an RRULE BYDAY list, e.g. "MO,WE,FR".
func byDay(days models.Days) string {
	var codes []string
	for _, d := range []struct {
		on   bool
		code string
	}{
		{days.Monday, "MO"},
		{days.Tuesday, "TU"},
		{days.Wednesday, "WE"},
		{days.Thursday, "TH"},
		{days.Friday, "FR"},
		{days.Saturday, "SA"},
		{days.Sunday, "SU"},
	} {
		if d.on {
			codes = append(codes, d.code)
		}
	}
	return strings.Join(codes, ",")
}
