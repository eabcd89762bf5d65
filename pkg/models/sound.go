package models

// SleepSound is an entry in the ambient sound library.
type SleepSound struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Source   string `json:"source" validate:"required"` // file name relative to the sounds dir
	IsCustom bool   `json:"isCustom"`
}

// DefaultSounds returns the built-in sleep sound library.
func DefaultSounds() []SleepSound {
	return []SleepSound{
		{ID: "rain", Name: "Rain", Source: "rain.wav"},
		{ID: "white_noise", Name: "White Noise", Source: "white_noise.wav"},
		{ID: "ocean_waves", Name: "Ocean Waves", Source: "ocean_waves.wav"},
		{ID: "forest", Name: "Forest", Source: "forest.wav"},
		{ID: "thunderstorm", Name: "Thunderstorm", Source: "thunderstorm.wav"},
	}
}

// AlarmSoundSource maps an alarm sound id to its file name, falling back
// to the default alarm tone for unknown ids.
func AlarmSoundSource(soundID string) string {
	switch soundID {
	case "gentle":
		return "gentle-alarm.wav"
	case "loud":
		return "loud-alarm.wav"
	default:
		return "alarm.wav"
	}
}
