package mission

import (
	"math/rand"
	"strings"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// puzzleSymbols is the pool the memory sequence draws from.
var puzzleSymbols = []string{"sun", "moon", "star", "cloud", "tree", "wave", "fire", "leaf"}

const puzzleLength = 4

// Puzzle is a memory challenge: the host shows the sequence briefly,
// hides it, and the user must repeat it in order.
type Puzzle struct {
	sequence []string
}

// NewPuzzle draws a random symbol sequence from rng.
func NewPuzzle(rng *rand.Rand) *Puzzle {
	seq := make([]string, puzzleLength)
	for i := range seq {
		seq[i] = puzzleSymbols[rng.Intn(len(puzzleSymbols))]
	}
	return &Puzzle{sequence: seq}
}

func (p *Puzzle) Type() models.MissionType { return models.MissionPuzzle }

// Sequence returns the symbols to memorize, in order.
func (p *Puzzle) Sequence() []string {
	out := make([]string, len(p.sequence))
	copy(out, p.sequence)
	return out
}

func (p *Puzzle) Prompt() string {
	return "Repeat the sequence you memorized, separated by spaces"
}

// Check accepts the sequence retyped in order, case-insensitive,
// whitespace-separated.
func (p *Puzzle) Check(answer string) bool {
	got := strings.Fields(strings.ToLower(strings.TrimSpace(answer)))
	if len(got) != len(p.sequence) {
		return false
	}
	for i, sym := range p.sequence {
		if got[i] != sym {
			return false
		}
	}
	return true
}
