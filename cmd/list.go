package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all alarms",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getAlarmStore()
		if err != nil {
			return err
		}
		alarms, err := s.LoadAll()
		if err != nil {
			return err
		}
		if len(alarms) == 0 {
			fmt.Println("No alarms. Create one with: wakequest add --time HH:MM")
			return nil
		}

		now := time.Now()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tDAYS\tLABEL\tMISSION\tSTATE\tNEXT RING")
		for _, a := range alarms {
			state := "off"
			next := "-"
			if a.Enabled {
				state = "on"
				if at, ok := a.NextRing(now); ok {
					next = at.Format("Mon 15:04")
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(a.ID), a.Time, a.Days, a.Label, a.MissionType, state, next)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
