package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/audio"
	"github.com/Tejas-00/wake-up-quests-alarm/pkg/store"
)

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "Manage the sleep sound library",
}

var soundsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available sleep sounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSoundStore()
		if err != nil {
			return err
		}
		sounds, err := s.Sounds()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSOURCE\tCUSTOM")
		for _, snd := range sounds {
			custom := ""
			if snd.IsCustom {
				custom = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(snd.ID), snd.Name, snd.Source, custom)
		}
		return w.Flush()
	},
}

var soundsPlayCmd = &cobra.Command{
	Use:   "play <sound-id>",
	Short: "Loop a sleep sound until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSoundStore()
		if err != nil {
			return err
		}
		sound, err := s.Find(args[0])
		if err != nil {
			return err
		}

		backend := &audio.OtoBackend{}
		playback, err := backend.PlayLoop(store.SoundPath(soundsDir(), sound))
		if err != nil {
			return fmt.Errorf("play %s: %w", sound.Name, err)
		}
		defer playback.Stop()

		fmt.Printf("Playing %s. Press Ctrl-C to stop.\n", sound.Name)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}

var soundsAddName string

var soundsAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Register a custom sleep sound file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSoundStore()
		if err != nil {
			return err
		}
		name := soundsAddName
		if name == "" {
			name = args[0]
		}
		sound, err := s.SaveCustom(name, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Added custom sound %s (%s)\n", shortID(sound.ID), sound.Name)
		return nil
	},
}

var soundsRemoveCmd = &cobra.Command{
	Use:   "remove <sound-id>",
	Short: "Remove a custom sleep sound",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSoundStore()
		if err != nil {
			return err
		}
		return s.DeleteCustom(args[0])
	},
}

func init() {
	soundsAddCmd.Flags().StringVarP(&soundsAddName, "name", "n", "", "display name for the sound")
	soundsCmd.AddCommand(soundsListCmd, soundsPlayCmd, soundsAddCmd, soundsRemoveCmd)
	rootCmd.AddCommand(soundsCmd)
}
