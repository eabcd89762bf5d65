package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <alarm-id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete an alarm",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getAlarmStore()
		if err != nil {
			return err
		}
		alarm, err := resolveAlarm(s, args[0])
		if err != nil {
			return err
		}
		if err := s.Delete(alarm.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted alarm %s (%s)\n", shortID(alarm.ID), alarm.Time)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
