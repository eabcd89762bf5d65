package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/audio"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/clock"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/mission"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/monitor"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the alarm daemon",
	Long: `Runs the monitoring loop in the foreground: once per scan period it
checks every alarm and rings the first one that is due. A ringing alarm
presents its mission on the terminal; completing the mission dismisses
it. Type "snooze" while ringing to silence the sound for a few minutes.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// soundDriver adapts the audio driver to the monitor's interface,
// resolving sound ids to files in the configured sounds directory.
type soundDriver struct {
	driver *audio.Driver
	dir    string
}

func (d soundDriver) Start(opts monitor.DriverOptions) {
	d.driver.Start(audio.StartOptions{
		SoundPath: filepath.Join(d.dir, models.AlarmSoundSource(opts.SoundID)),
		Vibrate:   opts.Vibrate,
	})
}

func (d soundDriver) Stop() { d.driver.Stop() }

func runDaemon(cmd *cobra.Command, args []string) error {
	alarms, err := getAlarmStore()
	if err != nil {
		return err
	}
	defer alarms.Close()
	statLog, err := getStatStore()
	if err != nil {
		return err
	}

	clk := clock.System{}
	driver := audio.NewDriver(&audio.OtoBackend{}, audio.NoopHaptic{}, slog.Default())
	snd := soundDriver{driver: driver, dir: soundsDir()}
	mon := monitor.New(alarms, snd, monitor.NewCompletionTracker(clk), clk,
		monitor.WithScanPeriod(scanPeriod()),
		monitor.WithStartupDelay(startupDelay()))

	ringing := make(chan models.Alarm, 1)
	mon.Start(func(a models.Alarm) {
		select {
		case ringing <- a:
		default:
			// A previous ring is still being handled.
		}
	})
	defer mon.Stop()

	if err := alarms.Watch(func() {
		slog.Info("alarm file changed, rescanning")
		mon.CheckNow()
	}); err != nil {
		slog.Warn("file watching unavailable", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("wakequest daemon started", "scan_period", scanPeriod().String())
	lines := readLines(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down")
			return nil
		case alarm := <-ringing:
			handleRing(ctx, mon, snd, statLog, alarm, lines)
		}
	}
}

// handleRing runs the mission dialog for one ringing alarm until it is
// dismissed or the daemon shuts down.
func handleRing(ctx context.Context, mon *monitor.Monitor, snd soundDriver, statLog *store.StatStore, alarm models.Alarm, lines <-chan string) {
	start := time.Now()
	rng := rand.New(rand.NewSource(start.UnixNano()))
	snoozes := 0

	label := alarm.Label
	if label == "" {
		label = alarm.Time
	}
	fmt.Printf("\n*** ALARM: %s ***\n", label)

	mi := mission.New(alarm.MissionType, rng)
	present(mi)
	shown := time.Now()

	for mon.ActiveAlarmID() == alarm.ID {
		fmt.Print("> ")
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return
		case line, ok = <-lines:
			if !ok {
				return
			}
		}

		answer := strings.TrimSpace(line)
		if strings.EqualFold(answer, "snooze") {
			snoozes++
			snd.Stop()
			delay := time.Duration(viper.GetInt("snooze_minutes")) * time.Minute
			fmt.Printf("Snoozed for %s...\n", delay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			if mon.ActiveAlarmID() != alarm.ID {
				return
			}
			snd.Start(monitor.DriverOptions{SoundID: alarm.SoundID, Vibrate: alarm.Vibrate})
			present(mi)
			shown = time.Now()
			continue
		}

		if time.Since(shown) > mission.TimeLimitSeconds*time.Second {
			fmt.Println("Time's up! Here is a new challenge.")
			mi = mission.New(alarm.MissionType, rng)
			present(mi)
			shown = time.Now()
			continue
		}

		if mi.Check(answer) {
			fmt.Println("Correct! Alarm dismissed. Good morning.")
			mon.Dismiss()
			stat := models.AlarmStat{
				Date:             start.Format("2006-01-02"),
				AlarmID:          alarm.ID,
				Dismissed:        true,
				SnoozeCount:      snoozes,
				CompletionTimeMs: time.Since(start).Milliseconds(),
			}
			if err := statLog.Append(stat); err != nil {
				slog.Warn("recording alarm stat failed", "error", err)
			}
			return
		}
		fmt.Println("Incorrect, try again.")
	}
}

// present prints a mission's challenge. Memory puzzles show their
// sequence briefly before hiding it.
func present(mi mission.Mission) {
	if p, ok := mi.(*mission.Puzzle); ok {
		fmt.Printf("Memorize this sequence: %s\n", strings.Join(p.Sequence(), " "))
		time.Sleep(3 * time.Second)
		// Push the sequence out of sight.
		fmt.Print(strings.Repeat("\n", 30))
	}
	fmt.Println(mi.Prompt())
}

// readLines feeds stdin lines to a channel so ring handling can select
// on input, snooze timers and shutdown at once.
func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}
