package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayback struct {
	mu      sync.Mutex
	stopped int
}

func (p *fakePlayback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped++
}

func (p *fakePlayback) stopCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

type fakeBackend struct {
	mu       sync.Mutex
	failures int
	calls    int
	paths    []string
	playback *fakePlayback
}

func (b *fakeBackend) PlayLoop(path string) (Playback, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	b.paths = append(b.paths, path)
	if b.failures > 0 {
		b.failures--
		return nil, errors.New("device busy")
	}
	b.playback = &fakePlayback{}
	return b.playback, nil
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *fakeBackend) currentPlayback() *fakePlayback {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.playback
}

type fakeHaptic struct {
	mu       sync.Mutex
	vibrates int
	cancels  int
}

func (h *fakeHaptic) Vibrate(pattern []time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.vibrates++
}

func (h *fakeHaptic) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancels++
}

func (h *fakeHaptic) counts() (vibrates, cancels int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.vibrates, h.cancels
}

func TestDriverStartAndStop(t *testing.T) {
	backend := &fakeBackend{}
	haptic := &fakeHaptic{}
	d := NewDriver(backend, haptic, nil)

	d.Start(StartOptions{SoundPath: "/sounds/alarm.wav", Vibrate: true})

	require.Eventually(t, func() bool {
		return backend.currentPlayback() != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"/sounds/alarm.wav"}, backend.paths)

	// The vibrate loop fires its pattern immediately.
	require.Eventually(t, func() bool {
		v, _ := haptic.counts()
		return v >= 1
	}, time.Second, 5*time.Millisecond)

	d.Stop()
	assert.GreaterOrEqual(t, backend.currentPlayback().stopCount(), 1)
	_, cancels := haptic.counts()
	assert.GreaterOrEqual(t, cancels, 1)

	// Stopping again is a no-op.
	stops := backend.currentPlayback().stopCount()
	d.Stop()
	assert.Equal(t, stops, backend.currentPlayback().stopCount())
}

func TestDriverNoVibrateWhenDisabled(t *testing.T) {
	backend := &fakeBackend{}
	haptic := &fakeHaptic{}
	d := NewDriver(backend, haptic, nil)

	d.Start(StartOptions{SoundPath: "/sounds/alarm.wav"})
	require.Eventually(t, func() bool {
		return backend.currentPlayback() != nil
	}, time.Second, 5*time.Millisecond)

	vibrates, _ := haptic.counts()
	assert.Zero(t, vibrates)
	d.Stop()
}

func TestDriverRetriesThenSucceeds(t *testing.T) {
	backend := &fakeBackend{failures: 2}
	d := NewDriver(backend, nil, nil)

	d.Start(StartOptions{SoundPath: "/sounds/alarm.wav"})
	defer d.Stop()

	require.Eventually(t, func() bool {
		return backend.currentPlayback() != nil
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, backend.callCount())
}

func TestDriverGivesUpAfterBoundedRetries(t *testing.T) {
	backend := &fakeBackend{failures: 100}
	d := NewDriver(backend, nil, nil)

	d.Start(StartOptions{SoundPath: "/sounds/alarm.wav"})
	defer d.Stop()

	require.Eventually(t, func() bool {
		return backend.callCount() == playAttempts
	}, 5*time.Second, 10*time.Millisecond)

	// No further attempts after the last failure.
	time.Sleep(2 * retryDelay)
	assert.Equal(t, playAttempts, backend.callCount())
}

func TestDriverStopDuringRetryAbortsPlayback(t *testing.T) {
	backend := &fakeBackend{failures: 1}
	d := NewDriver(backend, nil, nil)

	d.Start(StartOptions{SoundPath: "/sounds/alarm.wav"})
	require.Eventually(t, func() bool {
		return backend.callCount() >= 1
	}, time.Second, 5*time.Millisecond)

	// Stop lands inside the retry delay; the pending attempt must not
	// leave an orphaned playback running.
	d.Stop()
	time.Sleep(2 * retryDelay)
	if p := backend.currentPlayback(); p != nil {
		assert.GreaterOrEqual(t, p.stopCount(), 1)
	}
}

// gatedBackend blocks its first PlayLoop call until gate is closed, so
// a restart can land while the previous start is still in flight.
type gatedBackend struct {
	gate chan struct{}

	mu        sync.Mutex
	calls     int
	playbacks []*fakePlayback
}

func (b *gatedBackend) PlayLoop(path string) (Playback, error) {
	b.mu.Lock()
	b.calls++
	first := b.calls == 1
	p := &fakePlayback{}
	b.playbacks = append(b.playbacks, p)
	b.mu.Unlock()
	if first {
		<-b.gate
	}
	return p, nil
}

func (b *gatedBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *gatedBackend) playback(i int) *fakePlayback {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.playbacks[i]
}

func TestDriverRestartDuringSlowStart(t *testing.T) {
	backend := &gatedBackend{gate: make(chan struct{})}
	d := NewDriver(backend, nil, nil)

	// The first start stalls inside the backend.
	d.Start(StartOptions{SoundPath: "/sounds/first.wav"})
	require.Eventually(t, func() bool {
		return backend.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	// A restart replaces the generation while the first is in flight.
	d.Start(StartOptions{SoundPath: "/sounds/second.wav"})
	require.Eventually(t, func() bool {
		return backend.callCount() == 2
	}, time.Second, 5*time.Millisecond)

	// The first start finally returns; its playback is stale and must
	// stop itself instead of taking over.
	close(backend.gate)
	require.Eventually(t, func() bool {
		return backend.playback(0).stopCount() >= 1
	}, time.Second, 5*time.Millisecond)

	// Stop must reach the second generation's playback.
	d.Stop()
	require.Eventually(t, func() bool {
		return backend.playback(1).stopCount() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestDriverRestartReplacesPlayback(t *testing.T) {
	backend := &fakeBackend{}
	d := NewDriver(backend, nil, nil)

	d.Start(StartOptions{SoundPath: "/sounds/first.wav"})
	require.Eventually(t, func() bool {
		return backend.currentPlayback() != nil
	}, time.Second, 5*time.Millisecond)
	first := backend.currentPlayback()

	d.Start(StartOptions{SoundPath: "/sounds/second.wav"})
	require.Eventually(t, func() bool {
		return backend.callCount() == 2
	}, time.Second, 5*time.Millisecond)
	defer d.Stop()

	assert.GreaterOrEqual(t, first.stopCount(), 1)
}
