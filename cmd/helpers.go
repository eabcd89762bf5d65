package cmd

import (
	"fmt"
	"strings"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/store"
)

// resolveAlarm finds an alarm by full id or unambiguous id prefix.
func resolveAlarm(s *store.AlarmStore, idOrPrefix string) (models.Alarm, error) {
	alarms, err := s.LoadAll()
	if err != nil {
		return models.Alarm{}, err
	}
	var matches []models.Alarm
	for _, a := range alarms {
		if a.ID == idOrPrefix {
			return a, nil
		}
		if strings.HasPrefix(a.ID, idOrPrefix) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return models.Alarm{}, fmt.Errorf("no alarm matches %q", idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return models.Alarm{}, fmt.Errorf("%q is ambiguous, matches %d alarms", idOrPrefix, len(matches))
	}
}
