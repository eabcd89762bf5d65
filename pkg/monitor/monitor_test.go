package monitor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/clock"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

type fakeStore struct {
	mu     sync.Mutex
	alarms []models.Alarm
	err    error
	loads  int
}

func (s *fakeStore) LoadAll() ([]models.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Alarm, len(s.alarms))
	copy(out, s.alarms)
	return out, nil
}

func (s *fakeStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *fakeStore) loadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

type fakeDriver struct {
	mu     sync.Mutex
	starts []DriverOptions
	stops  int
}

func (d *fakeDriver) Start(opts DriverOptions) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.starts = append(d.starts, opts)
}

func (d *fakeDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stops++
}

func (d *fakeDriver) startCalls() []DriverOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DriverOptions(nil), d.starts...)
}

func (d *fakeDriver) stopCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stops
}

// wednesday0600 sits 15 seconds into a 06:00 Wednesday window.
var wednesday0600 = time.Date(2026, 9, 2, 6, 0, 15, 0, time.Local)

func wednesdayAlarm(id string) models.Alarm {
	return models.Alarm{
		ID:          id,
		Time:        "06:00",
		Days:        models.Days{Wednesday: true},
		Enabled:     true,
		MissionType: models.MissionMath,
		SoundID:     "gentle",
		Vibrate:     true,
	}
}

// newTestMonitor builds a started monitor whose timers are pushed far
// out, so ticks only happen through CheckNow.
func newTestMonitor(t *testing.T, store *fakeStore, driver *fakeDriver, at time.Time, cb Callback) *Monitor {
	t.Helper()
	clk := clock.Fixed{T: at}
	m := New(store, driver, NewCompletionTracker(clk), clk,
		WithScanPeriod(time.Hour),
		WithStartupDelay(time.Hour))
	m.Start(cb)
	t.Cleanup(m.Stop)
	return m
}

func TestMonitorEndToEnd(t *testing.T) {
	alarm := wednesdayAlarm("w1")
	store := &fakeStore{alarms: []models.Alarm{alarm}}
	driver := &fakeDriver{}

	var triggered []models.Alarm
	m := newTestMonitor(t, store, driver, wednesday0600, func(a models.Alarm) {
		triggered = append(triggered, a)
	})
	require.Equal(t, Watching, m.State())

	m.CheckNow()

	assert.Equal(t, Ringing, m.State())
	assert.Equal(t, "w1", m.ActiveAlarmID())
	starts := driver.startCalls()
	require.Len(t, starts, 1)
	assert.Equal(t, DriverOptions{SoundID: "gentle", Vibrate: true}, starts[0])
	// The callback runs synchronously within the tick.
	require.Len(t, triggered, 1)
	assert.Equal(t, "w1", triggered[0].ID)

	m.Dismiss()

	assert.Equal(t, Watching, m.State())
	assert.Empty(t, m.ActiveAlarmID())
	assert.GreaterOrEqual(t, driver.stopCount(), 1)
	assert.True(t, m.Tracker().IsCompletedToday("w1"))

	// Still inside the matching minute, but completed today.
	m.CheckNow()
	assert.Equal(t, Watching, m.State())
	require.Len(t, driver.startCalls(), 1)
}

func TestMonitorSingleWinnerPerTick(t *testing.T) {
	// Two alarms due in the same tick: only the first in stored order
	// rings; the scan stops at the first match and sets exactly one
	// active alarm id.
	first := wednesdayAlarm("first")
	second := wednesdayAlarm("second")
	store := &fakeStore{alarms: []models.Alarm{first, second}}
	driver := &fakeDriver{}

	m := newTestMonitor(t, store, driver, wednesday0600, nil)
	m.CheckNow()

	assert.Equal(t, "first", m.ActiveAlarmID())
	require.Len(t, driver.startCalls(), 1)

	// While ringing, further ticks do not evaluate anything.
	loadsBefore := store.loadCount()
	m.CheckNow()
	assert.Equal(t, loadsBefore, store.loadCount())
	assert.Equal(t, "first", m.ActiveAlarmID())

	// After dismissal the starved alarm wins the next tick.
	m.Dismiss()
	m.CheckNow()
	assert.Equal(t, "second", m.ActiveAlarmID())
}

func TestMonitorIdempotentStopAndDismiss(t *testing.T) {
	store := &fakeStore{}
	driver := &fakeDriver{}
	clk := clock.Fixed{T: wednesday0600}
	m := New(store, driver, NewCompletionTracker(clk), clk)

	// Never started: both are safe no-ops.
	m.Dismiss()
	m.Stop()
	assert.Equal(t, Idle, m.State())

	m.Start(nil)
	m.Stop()
	m.Stop()
	assert.Equal(t, Idle, m.State())
	assert.Empty(t, m.ActiveAlarmID())
}

func TestMonitorRestartWhileRinging(t *testing.T) {
	store := &fakeStore{alarms: []models.Alarm{wednesdayAlarm("w1")}}
	driver := &fakeDriver{}

	m := newTestMonitor(t, store, driver, wednesday0600, nil)
	m.CheckNow()
	require.Equal(t, Ringing, m.State())

	// Restart lands back in Watching with the active slot cleared and
	// the driver silenced.
	m.Start(nil)
	assert.Equal(t, Watching, m.State())
	assert.Empty(t, m.ActiveAlarmID())
	assert.GreaterOrEqual(t, driver.stopCount(), 1)
}

func TestMonitorStorageFailureSkipsTick(t *testing.T) {
	store := &fakeStore{alarms: []models.Alarm{wednesdayAlarm("w1")}}
	store.setErr(errors.New("disk on fire"))
	driver := &fakeDriver{}

	m := newTestMonitor(t, store, driver, wednesday0600, nil)
	m.CheckNow()

	assert.Equal(t, Watching, m.State())
	assert.Empty(t, driver.startCalls())

	// The next tick retries and succeeds.
	store.setErr(nil)
	m.CheckNow()
	assert.Equal(t, Ringing, m.State())
}

func TestMonitorStartupScanFires(t *testing.T) {
	store := &fakeStore{alarms: []models.Alarm{wednesdayAlarm("w1")}}
	driver := &fakeDriver{}
	clk := clock.Fixed{T: wednesday0600}
	m := New(store, driver, NewCompletionTracker(clk), clk,
		WithScanPeriod(time.Hour),
		WithStartupDelay(5*time.Millisecond))
	m.Start(nil)
	defer m.Stop()

	assert.Eventually(t, func() bool {
		return m.State() == Ringing
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "w1", m.ActiveAlarmID())
}

func TestMonitorNoCallbackAfterStop(t *testing.T) {
	store := &fakeStore{alarms: []models.Alarm{wednesdayAlarm("w1")}}
	driver := &fakeDriver{}
	clk := clock.Fixed{T: wednesday0600}

	var mu sync.Mutex
	fired := 0
	m := New(store, driver, NewCompletionTracker(clk), clk,
		WithScanPeriod(time.Hour),
		WithStartupDelay(time.Hour))
	m.Start(func(models.Alarm) {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	m.Stop()

	// A tick after Stop must no-op.
	m.CheckNow()
	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, fired)
	assert.Equal(t, Idle, m.State())
}
