package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable <alarm-id>",
	Short: "Enable an alarm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <alarm-id>",
	Short: "Disable an alarm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(args[0], false)
	},
}

func setEnabled(idOrPrefix string, enabled bool) error {
	s, err := getAlarmStore()
	if err != nil {
		return err
	}
	alarm, err := resolveAlarm(s, idOrPrefix)
	if err != nil {
		return err
	}
	alarm.Enabled = enabled
	if err := s.Save(alarm); err != nil {
		return err
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("Alarm %s (%s) %s\n", shortID(alarm.ID), alarm.Time, state)
	return nil
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}
