package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

var addFlags struct {
	time     string
	days     string
	label    string
	mission  string
	sound    string
	vibrate  bool
	disabled bool
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new alarm",
	Example: `  wakequest add --time 07:30 --days mon,tue,wed,thu,fri --label "Work"
  wakequest add --time 09:00 --days weekends --mission puzzle --vibrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := parseDays(addFlags.days)
		if err != nil {
			return err
		}
		alarm := models.Alarm{
			ID:          uuid.New().String(),
			Time:        addFlags.time,
			Days:        days,
			Enabled:     !addFlags.disabled,
			Label:       addFlags.label,
			MissionType: models.MissionType(addFlags.mission),
			SoundID:     addFlags.sound,
			Vibrate:     addFlags.vibrate,
		}
		if err := alarm.Validate(); err != nil {
			return err
		}
		s, err := getAlarmStore()
		if err != nil {
			return err
		}
		if err := s.Save(alarm); err != nil {
			return err
		}
		fmt.Printf("Created alarm %s (%s %s)\n", alarm.ID, alarm.Time, alarm.Days)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addFlags.time, "time", "t", "", "alarm time, 24h HH:MM (required)")
	addCmd.Flags().StringVarP(&addFlags.days, "days", "d", "daily", "weekdays: mon,tue,... or daily/weekdays/weekends")
	addCmd.Flags().StringVarP(&addFlags.label, "label", "l", "", "free-text label")
	addCmd.Flags().StringVarP(&addFlags.mission, "mission", "m", "math", "mission type: photo, math, puzzle or random")
	addCmd.Flags().StringVarP(&addFlags.sound, "sound", "s", "default", "alarm sound id")
	addCmd.Flags().BoolVar(&addFlags.vibrate, "vibrate", false, "vibrate while ringing")
	addCmd.Flags().BoolVar(&addFlags.disabled, "disabled", false, "create the alarm disabled")
	_ = addCmd.MarkFlagRequired("time")
	rootCmd.AddCommand(addCmd)
}

// parseDays interprets a comma-separated weekday list or one of the
// shorthands daily, weekdays, weekends.
func parseDays(spec string) (models.Days, error) {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "daily":
		return models.Days{Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true, Saturday: true, Sunday: true}, nil
	case "weekdays":
		return models.Days{Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true}, nil
	case "weekends":
		return models.Days{Saturday: true, Sunday: true}, nil
	}

	var days models.Days
	for _, part := range strings.Split(spec, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "mon", "monday":
			days.Monday = true
		case "tue", "tuesday":
			days.Tuesday = true
		case "wed", "wednesday":
			days.Wednesday = true
		case "thu", "thursday":
			days.Thursday = true
		case "fri", "friday":
			days.Friday = true
		case "sat", "saturday":
			days.Saturday = true
		case "sun", "sunday":
			days.Sunday = true
		case "":
		default:
			return models.Days{}, fmt.Errorf("unknown weekday %q", part)
		}
	}
	if !days.Any() {
		return models.Days{}, fmt.Errorf("no weekdays selected in %q", spec)
	}
	return days, nil
}
