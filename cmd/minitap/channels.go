package main

import (
	"fmt"
	"os"

	"github.com/aretw0/minitap/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var channelsCmd = &cobra.Command{
	Use:   "channels <scenario.yaml>",
	Short: "List the channels a scenario subscribes to",
	Long:  `Registers the scenario taps without running any step and prints the resulting hub channels.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := newSession(cmd, args[0])
		if err != nil {
			fmt.Printf("Error loading scenario: %v\n", err)
			os.Exit(1)
		}

		t := s.player.Tapper()
		for _, tap := range s.scenario.Taps {
			t.Tap(tap.Scope, tap.Event, func(args ...any) error { return nil })
		}

		render := tui.NewRenderer(!useColor(cmd))
		out, err := render(tui.ChannelReport(t.Hub().Channels()))
		if err != nil {
			fmt.Printf("Error rendering report: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}
