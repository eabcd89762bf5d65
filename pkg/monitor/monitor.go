// Package monitor implements the alarm trigger loop: a periodic scan
// over the stored alarms that rings at most one alarm at a time and
// reconciles dismissal with the per-day completion guard.
package monitor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/clock"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// State is the monitor's lifecycle state.
type State int

const (
	// Idle means no timers are running.
	Idle State = iota
	// Watching means the scan timer is active and nothing rings.
	Watching
	// Ringing means exactly one alarm is active.
	Ringing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Watching:
		return "watching"
	case Ringing:
		return "ringing"
	default:
		return "unknown"
	}
}

// Storage loads the alarm collection in stored order. An empty
// collection is a normal state, not an error.
type Storage interface {
	LoadAll() ([]models.Alarm, error)
}

// DriverOptions tells the sound driver what to turn on.
type DriverOptions struct {
	SoundID string
	Vibrate bool
}

// Driver starts and stops the audible/haptic side effects of the one
// ringing alarm. Both calls are best-effort and must not block.
type Driver interface {
	Start(opts DriverOptions)
	Stop()
}

// Callback receives the triggered alarm, synchronously from within the
// scan tick that detected it.
type Callback func(models.Alarm)

const (
	defaultScanPeriod   = time.Minute
	defaultStartupDelay = time.Second
)

// Monitor owns the scan timer, the active-alarm slot and the midnight
// reset. All state lives on the instance so independent monitors (as
// in tests) cannot interfere with each other.
type Monitor struct {
	store   Storage
	driver  Driver
	tracker *CompletionTracker
	clk     clock.Clock
	logger  *slog.Logger

	scanPeriod   time.Duration
	startupDelay time.Duration

	mu       sync.Mutex
	state    State
	activeID string
	callback Callback
	stopCh   chan struct{}
	gen      uint64
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithScanPeriod overrides the scan interval (default one minute,
// matching the whole-minute trigger granularity).
func WithScanPeriod(d time.Duration) Option {
	return func(m *Monitor) { m.scanPeriod = d }
}

// WithStartupDelay overrides the delay before the first scan.
func WithStartupDelay(d time.Duration) Option {
	return func(m *Monitor) { m.startupDelay = d }
}

// WithLogger sets the monitor's logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) { m.logger = l }
}

// New builds a stopped monitor. Call Start to begin scanning.
func New(store Storage, driver Driver, tracker *CompletionTracker, clk clock.Clock, opts ...Option) *Monitor {
	if clk == nil {
		clk = clock.System{}
	}
	if tracker == nil {
		tracker = NewCompletionTracker(clk)
	}
	m := &Monitor{
		store:        store,
		driver:       driver,
		tracker:      tracker,
		clk:          clk,
		logger:       slog.Default(),
		scanPeriod:   defaultScanPeriod,
		startupDelay: defaultStartupDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Tracker exposes the completion tracker, e.g. for hosts that render
// completion state.
func (m *Monitor) Tracker() *CompletionTracker { return m.tracker }

// Start moves the monitor to Watching, arms the midnight reset and the
// repeating scan timer, and schedules one near-immediate scan to catch
// alarms due at startup. Calling Start on a running monitor restarts
// it without leaking timers.
func (m *Monitor) Start(cb Callback) {
	m.mu.Lock()
	m.cancelLocked()
	m.gen++
	gen := m.gen
	m.callback = cb
	m.state = Watching
	m.activeID = ""
	stopCh := make(chan struct{})
	m.stopCh = stopCh
	m.mu.Unlock()

	m.driver.Stop()
	m.tracker.StartMidnightReset()
	go m.loop(gen, stopCh)
}

// Stop cancels the scan and midnight timers, silences the driver and
// clears the active alarm. Safe to call in any state, repeatedly.
func (m *Monitor) Stop() {
	m.mu.Lock()
	m.cancelLocked()
	m.gen++
	m.callback = nil
	m.state = Idle
	m.activeID = ""
	m.mu.Unlock()

	m.driver.Stop()
	m.tracker.StopMidnightReset()
}

// Dismiss ends the ringing alarm: stops the driver, marks the alarm
// completed for today and returns to Watching. A dismiss with no
// active alarm is a no-op.
func (m *Monitor) Dismiss() {
	m.mu.Lock()
	if m.state != Ringing {
		m.mu.Unlock()
		return
	}
	id := m.activeID
	m.tracker.MarkCompleted(id)
	m.activeID = ""
	m.state = Watching
	m.mu.Unlock()

	m.driver.Stop()
	m.logger.Info("alarm dismissed", "id", id)
}

// ActiveAlarmID returns the ringing alarm's id, or "" when none rings.
// Read-only; callable at any time.
func (m *Monitor) ActiveAlarmID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// State returns the current lifecycle state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CheckNow runs one scan immediately, outside the timer cadence.
// Hosts call this after the alarm file changes under them.
func (m *Monitor) CheckNow() {
	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()
	m.scan(gen)
}

func (m *Monitor) cancelLocked() {
	if m.stopCh != nil {
		close(m.stopCh)
		m.stopCh = nil
	}
}

func (m *Monitor) loop(gen uint64, stopCh <-chan struct{}) {
	startup := time.NewTimer(m.startupDelay)
	defer startup.Stop()
	ticker := time.NewTicker(m.scanPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-startup.C:
			m.scan(gen)
		case <-ticker.C:
			m.scan(gen)
		}
	}
}

// scan evaluates every stored alarm in order and triggers the first
// match. Remaining alarms are not evaluated this tick; at most one
// alarm becomes active per scan.
func (m *Monitor) scan(gen uint64) {
	m.mu.Lock()
	if m.gen != gen || m.state != Watching {
		m.mu.Unlock()
		return
	}
	alarms, err := m.store.LoadAll()
	if err != nil {
		m.mu.Unlock()
		// The next tick retries; this tick simply has no alarms due.
		m.logger.Warn("loading alarms failed, skipping tick", "error", err)
		return
	}
	now := m.clk.Now()
	var fired *models.Alarm
	for i := range alarms {
		if ShouldTrigger(alarms[i], now, m.tracker) {
			fired = &alarms[i]
			break
		}
	}
	if fired == nil {
		m.mu.Unlock()
		return
	}
	m.state = Ringing
	m.activeID = fired.ID
	cb := m.callback
	// The driver call stays inside the transition: a playback failure
	// must not abort the state change, and Start never blocks.
	m.driver.Start(DriverOptions{SoundID: fired.SoundID, Vibrate: fired.Vibrate})
	m.mu.Unlock()

	m.logger.Info("alarm ringing", "id", fired.ID, "time", fired.Time, "label", fired.Label)
	if cb != nil {
		cb(*fired)
	}
}
