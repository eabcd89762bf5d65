package monitor

import (
	"sync"
	"time"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/clock"
)

const dateLayout = "2006-01-02"

// CompletionTracker remembers, per alarm id, the local calendar date of
// the last dismissal. Marks are only valid for the current date; a
// self-rescheduling timer clears them at each local midnight.
type CompletionTracker struct {
	clk clock.Clock

	mu        sync.Mutex
	completed map[string]string // alarm id -> local date string
	timer     *time.Timer
	armed     bool
}

// NewCompletionTracker builds a tracker reading dates from clk.
func NewCompletionTracker(clk clock.Clock) *CompletionTracker {
	if clk == nil {
		clk = clock.System{}
	}
	return &CompletionTracker{
		clk:       clk,
		completed: make(map[string]string),
	}
}

// IsCompletedToday reports whether the alarm was dismissed on today's
// local date.
func (t *CompletionTracker) IsCompletedToday(alarmID string) bool {
	today := t.clk.Now().Format(dateLayout)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed[alarmID] == today
}

// MarkCompleted records a dismissal for today's local date.
func (t *CompletionTracker) MarkCompleted(alarmID string) {
	if alarmID == "" {
		return
	}
	today := t.clk.Now().Format(dateLayout)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completed[alarmID] = today
}

// ResetAll clears every completion mark.
func (t *CompletionTracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completed = make(map[string]string)
}

// StartMidnightReset arms a one-shot timer for the next local midnight.
// After firing it resets all marks and re-arms itself, recomputing the
// delta each time so DST shifts cannot skew it. Arming twice replaces
// the previous timer.
func (t *CompletionTracker) StartMidnightReset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.armed = true
	t.armLocked()
}

// StopMidnightReset cancels the midnight timer.
func (t *CompletionTracker) StopMidnightReset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.armed = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *CompletionTracker) armLocked() {
	if t.timer != nil {
		t.timer.Stop()
	}
	now := t.clk.Now()
	delta := nextMidnight(now).Sub(now)
	t.timer = time.AfterFunc(delta, func() {
		t.ResetAll()
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.armed {
			t.armLocked()
		}
	})
}

// nextMidnight returns 00:00:00 of the day after now, in now's
// location.
func nextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
