package mission

import (
	"strings"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// CaptureFunc is the platform media-capture collaborator. It returns
// nil when a photo was taken successfully.
type CaptureFunc func() error

// photoPhrase is the fallback confirmation when no camera is wired in.
const photoPhrase = "i am awake"

// Photo asks the user to take a photo. Hosts without a camera degrade
// to typing a confirmation phrase.
type Photo struct {
	capture CaptureFunc
}

// NewPhoto wires an optional capture collaborator. nil means no camera
// is available.
func NewPhoto(capture CaptureFunc) *Photo {
	return &Photo{capture: capture}
}

func (p *Photo) Type() models.MissionType { return models.MissionPhoto }

func (p *Photo) Prompt() string {
	if p.capture != nil {
		return "Take a photo to dismiss the alarm (press enter to open the camera)"
	}
	return "No camera available. Type \"" + photoPhrase + "\" to dismiss the alarm"
}

// Check completes the mission: with a camera, any input triggers a
// capture attempt; without one, the confirmation phrase must match.
func (p *Photo) Check(answer string) bool {
	if p.capture != nil {
		return p.capture() == nil
	}
	return strings.EqualFold(strings.TrimSpace(answer), photoPhrase)
}
