package models

// AlarmStat is one append-only record of an alarm occurrence.
type AlarmStat struct {
	Date             string `json:"date"` // local calendar date, "2006-01-02"
	AlarmID          string `json:"alarmId"`
	Dismissed        bool   `json:"dismissed"`
	SnoozeCount      int    `json:"snoozeCount"`
	CompletionTimeMs int64  `json:"completionTimeMs"`
}
