package mission

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// Math is a medium-difficulty arithmetic problem: two-digit addition,
// non-negative subtraction, or times-table multiplication.
type Math struct {
	A, B     int
	Operator string
	answer   int
}

// NewMath generates a fresh problem from rng.
func NewMath(rng *rand.Rand) *Math {
	m := &Math{}
	switch rng.Intn(3) {
	case 0:
		m.Operator = "+"
		m.A = rng.Intn(90) + 10 // 10-99
		m.B = rng.Intn(90) + 10
		m.answer = m.A + m.B
	case 1:
		m.Operator = "-"
		m.A = rng.Intn(90) + 10
		m.B = rng.Intn(m.A) // keeps the result non-negative
		m.answer = m.A - m.B
	default:
		m.Operator = "*"
		m.A = rng.Intn(12) + 1 // 1-12
		m.B = rng.Intn(12) + 1
		m.answer = m.A * m.B
	}
	return m
}

func (m *Math) Type() models.MissionType { return models.MissionMath }

func (m *Math) Prompt() string {
	op := m.Operator
	if op == "*" {
		op = "×"
	}
	return fmt.Sprintf("Solve: %d %s %d = ?", m.A, op, m.B)
}

func (m *Math) Check(answer string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false
	}
	return n == m.answer
}

// Answer exposes the solution, e.g. for logging after a give-up.
func (m *Math) Answer() int { return m.answer }
