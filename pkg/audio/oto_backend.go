package audio

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton. oto allows only one per process.
var (
	otoCtx     *oto.Context
	otoCtxOnce sync.Once
	otoCtxErr  error
)

func initOtoContext(format wavFormat) error {
	otoCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoCtxErr = fmt.Errorf("init audio context: %w", err)
			return
		}
		// Wait for the hardware audio devices to be ready.
		<-ready
		otoCtx = ctx
	})
	return otoCtxErr
}

// OtoBackend plays WAV files through the ebitengine/oto speaker
// context.
type OtoBackend struct {
	Logger *slog.Logger
}

// PlayLoop reads a WAV file and loops it until the returned playback
// is stopped.
func (b *OtoBackend) PlayLoop(path string) (Playback, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sound %s: %w", path, err)
	}
	format, samples, err := parseWAV(data)
	if err != nil {
		return nil, fmt.Errorf("parse sound %s: %w", path, err)
	}
	if err := initOtoContext(format); err != nil {
		return nil, err
	}

	lp := &loopPlayback{
		samples: samples,
		stopCh:  make(chan struct{}),
		logger:  b.Logger,
	}
	if lp.logger == nil {
		lp.logger = slog.Default()
	}
	go lp.run()
	return lp, nil
}

type loopPlayback struct {
	samples []byte
	logger  *slog.Logger

	stopCh  chan struct{}
	mu      sync.Mutex
	stopped bool
	player  *oto.Player
}

func (lp *loopPlayback) run() {
	for {
		player := otoCtx.NewPlayer(bytes.NewReader(lp.samples))
		lp.mu.Lock()
		if lp.stopped {
			lp.mu.Unlock()
			player.Close()
			return
		}
		lp.player = player
		lp.mu.Unlock()

		player.Play()
		for player.IsPlaying() {
			select {
			case <-lp.stopCh:
				player.Pause()
				player.Close()
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
		if err := player.Close(); err != nil {
			lp.logger.Warn("closing audio player", "error", err)
		}

		select {
		case <-lp.stopCh:
			return
		default:
			// Loop again from the start of the sample.
		}
	}
}

func (lp *loopPlayback) Stop() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.stopped {
		return
	}
	lp.stopped = true
	close(lp.stopCh)
	if lp.player != nil {
		lp.player.Pause()
	}
}
