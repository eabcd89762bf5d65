package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show wake-up analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		statLog, err := getStatStore()
		if err != nil {
			return err
		}
		records, err := statLog.LoadAll()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No data yet. Complete your first alarm to see analytics.")
			return nil
		}
		alarmStore, err := getAlarmStore()
		if err != nil {
			return err
		}
		alarms, err := alarmStore.LoadAll()
		if err != nil {
			return err
		}

		if avg, ok := stats.AverageWakeTime(records, alarms); ok {
			fmt.Printf("Average wake-up time:  %s\n", avg)
		} else {
			fmt.Println("Average wake-up time:  n/a")
		}
		fmt.Printf("Average snooze count:  %.1f\n", stats.AverageSnoozeCount(records))
		fmt.Printf("Success rate:          %d%%\n", stats.SuccessRate(records))
		dismissed, missed := stats.Counts(records)
		fmt.Printf("Dismissed: %d   Missed: %d\n", dismissed, missed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
