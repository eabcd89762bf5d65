// Package mission generates the challenges that gate alarm dismissal.
// Rendering is the host's job; missions only produce prompts and judge
// answers.
package mission

import (
	"math/rand"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// Mission is one dismissal challenge.
type Mission interface {
	Type() models.MissionType
	// Prompt is the challenge text shown to the user.
	Prompt() string
	// Check judges a single answer attempt.
	Check(answer string) bool
}

// TimeLimitSeconds is how long the user gets per attempt before the
// host regenerates the challenge.
const TimeLimitSeconds = 30

// New builds a mission of the given type. MissionRandom picks one of
// the concrete types. Unknown types fall back to math.
func New(t models.MissionType, rng *rand.Rand) Mission {
	if t == models.MissionRandom {
		concrete := []models.MissionType{models.MissionPhoto, models.MissionMath, models.MissionPuzzle}
		t = concrete[rng.Intn(len(concrete))]
	}
	switch t {
	case models.MissionPhoto:
		return NewPhoto(nil)
	case models.MissionPuzzle:
		return NewPuzzle(rng)
	default:
		return NewMath(rng)
	}
}
