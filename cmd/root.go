// Package cmd wires the wakequest CLI: alarm CRUD, the monitoring
// daemon, sleep sounds, analytics and export.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/store"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wakequest",
	Short: "Alarm clock with wake-up missions",
	Long: `wakequest is a personal alarm clock for the terminal. Alarms recur on
chosen weekdays and each one is guarded by a mission (math problem,
memory puzzle or photo) that must be completed to silence it.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.wakequest.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".wakequest")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("WAKEQUEST")
	viper.AutomaticEnv()

	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("sounds_dir", filepath.Join(defaultDataDir(), "sounds"))
	viper.SetDefault("scan_period", "1m")
	viper.SetDefault("startup_delay", "1s")
	viper.SetDefault("snooze_minutes", 5)

	// A missing config file just means defaults.
	_ = viper.ReadInConfig()

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wakequest"
	}
	return filepath.Join(home, ".wakequest")
}

func dataDir() string   { return viper.GetString("data_dir") }
func soundsDir() string { return viper.GetString("sounds_dir") }

func scanPeriod() time.Duration {
	d := viper.GetDuration("scan_period")
	if d <= 0 {
		d = time.Minute
	}
	return d
}

func startupDelay() time.Duration {
	d := viper.GetDuration("startup_delay")
	if d <= 0 {
		d = time.Second
	}
	return d
}

func getAlarmStore() (*store.AlarmStore, error) {
	s, err := store.NewAlarmStore(filepath.Join(dataDir(), "alarms.json"))
	if err != nil {
		return nil, fmt.Errorf("open alarm store: %w", err)
	}
	return s, nil
}

func getStatStore() (*store.StatStore, error) {
	s, err := store.NewStatStore(filepath.Join(dataDir(), "stats.json"))
	if err != nil {
		return nil, fmt.Errorf("open stat store: %w", err)
	}
	return s, nil
}

func getSoundStore() (*store.SoundStore, error) {
	s, err := store.NewSoundStore(filepath.Join(dataDir(), "custom_sounds.json"))
	if err != nil {
		return nil, fmt.Errorf("open sound store: %w", err)
	}
	return s, nil
}
