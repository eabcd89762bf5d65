// Package audio owns the alarm's audible and haptic side effects: a
// looping sound playback and a repeating vibration pattern. Both are
// best-effort; nothing here ever blocks or fails the trigger path.
package audio

import (
	"log/slog"
	"sync"
	"time"
)

// Backend starts a looping playback of a sound file.
type Backend interface {
	PlayLoop(path string) (Playback, error)
}

// Playback is a running loop that can be stopped. Stop must be
// idempotent.
type Playback interface {
	Stop()
}

// Haptic is the platform vibration capability. Implementations without
// a motor are no-ops.
type Haptic interface {
	Vibrate(pattern []time.Duration)
	Cancel()
}

// NoopHaptic is the degraded haptic capability used on platforms
// without a vibration motor.
type NoopHaptic struct{}

func (NoopHaptic) Vibrate([]time.Duration) {}
func (NoopHaptic) Cancel()                 {}

// VibratePattern is vibrate 500ms, pause 200ms, vibrate 500ms, repeated
// every vibrateInterval while an alarm rings.
var VibratePattern = []time.Duration{500 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond}

const (
	playAttempts    = 3
	retryDelay      = 500 * time.Millisecond
	vibrateInterval = 1500 * time.Millisecond
)

// StartOptions selects what the driver turns on.
type StartOptions struct {
	SoundPath string
	Vibrate   bool
}

// Driver owns the audio and vibration resources for the one ringing
// alarm. Only the monitor calls into it.
type Driver struct {
	backend Backend
	haptic  Haptic
	logger  *slog.Logger

	mu       sync.Mutex
	stopCh   chan struct{}
	playback Playback
}

// NewDriver wires a driver to its platform capabilities. A nil haptic
// degrades to a no-op.
func NewDriver(backend Backend, haptic Haptic, logger *slog.Logger) *Driver {
	if haptic == nil {
		haptic = NoopHaptic{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{backend: backend, haptic: haptic, logger: logger}
}

// Start begins looping playback and, when requested, the vibration
// pattern. Playback failures retry a few times on a background
// goroutine and then give up silently.
func (d *Driver) Start(opts StartOptions) {
	d.mu.Lock()
	d.stopLocked()
	stop := make(chan struct{})
	d.stopCh = stop
	d.mu.Unlock()

	go d.playWithRetry(opts.SoundPath, stop)
	if opts.Vibrate {
		go d.vibrateLoop(stop)
	}
}

// Stop halts playback and vibration. Calling it with nothing active
// does nothing.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Driver) stopLocked() {
	if d.stopCh != nil {
		close(d.stopCh)
		d.stopCh = nil
	}
	if d.playback != nil {
		d.playback.Stop()
		d.playback = nil
	}
	d.haptic.Cancel()
}

func (d *Driver) playWithRetry(path string, stop <-chan struct{}) {
	for attempt := 1; attempt <= playAttempts; attempt++ {
		select {
		case <-stop:
			return
		default:
		}

		playback, err := d.backend.PlayLoop(path)
		if err == nil {
			d.mu.Lock()
			if d.stopCh != stop {
				// Stopped or restarted while we were starting up; the
				// playback belongs to a stale generation.
				d.mu.Unlock()
				playback.Stop()
				return
			}
			d.playback = playback
			d.mu.Unlock()
			return
		}

		d.logger.Warn("alarm sound failed to start",
			"path", path, "attempt", attempt, "error", err)
		select {
		case <-stop:
			return
		case <-time.After(retryDelay):
		}
	}
	d.logger.Warn("giving up on alarm sound", "path", path, "attempts", playAttempts)
}

func (d *Driver) vibrateLoop(stop <-chan struct{}) {
	d.haptic.Vibrate(VibratePattern)
	ticker := time.NewTicker(vibrateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			d.haptic.Cancel()
			return
		case <-ticker.C:
			d.haptic.Vibrate(VibratePattern)
		}
	}
}
