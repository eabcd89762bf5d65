package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
	"github.com/spf13/cobra"
)

var (
	autostartEnable  bool
	autostartDisable bool
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Register or unregister the daemon as a login item",
	RunE: func(cmd *cobra.Command, args []string) error {
		if autostartEnable == autostartDisable {
			return fmt.Errorf("pass exactly one of --enable or --disable")
		}

		execPath, err := os.Executable()
		if err != nil {
			return err
		}
		execPath, err = filepath.EvalSymlinks(execPath)
		if err != nil {
			return err
		}

		app := &autostart.App{
			Name:        "wakequest",
			DisplayName: "Wake-Up Quests Alarm",
			Exec:        []string{execPath, "run"},
		}

		if autostartEnable {
			if app.IsEnabled() {
				fmt.Println("Autostart already enabled")
				return nil
			}
			if err := app.Enable(); err != nil {
				return fmt.Errorf("enable autostart: %w", err)
			}
			fmt.Println("Autostart enabled")
			return nil
		}

		if !app.IsEnabled() {
			fmt.Println("Autostart already disabled")
			return nil
		}
		if err := app.Disable(); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}
		fmt.Println("Autostart disabled")
		return nil
	},
}

func init() {
	autostartCmd.Flags().BoolVar(&autostartEnable, "enable", false, "start the daemon at login")
	autostartCmd.Flags().BoolVar(&autostartDisable, "disable", false, "stop starting the daemon at login")
	rootCmd.AddCommand(autostartCmd)
}
