package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/minitap/internal/presentation/graph"
	"github.com/aretw0/minitap/internal/presentation/tui"
	"github.com/aretw0/minitap/pkg/adapters/redis"
	"github.com/aretw0/minitap/pkg/record"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Replay a scripted host session and print what was observed",
	Long: `Declares the scenario's application and pages on a simulated host with minitap
installed, subscribes the scenario taps, runs every step and prints, per step,
which subscribers fired before the original method and what it returned.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		redisAddr, _ := cmd.Flags().GetString("redis")

		s, err := newSession(cmd, args[0])
		if err != nil {
			fmt.Printf("Error loading scenario: %v\n", err)
			os.Exit(1)
		}

		// Every lifecycle call is logged; with --redis it is also published.
		defer s.mirrorAll(record.NewLogRecorder(s.logger))()
		if redisAddr != "" {
			pub := redis.New(redisAddr, "", 0)
			defer pub.Close()
			defer s.mirrorAll(pub)()
		}

		results, err := s.player.Play(context.Background())
		if err != nil {
			fmt.Printf("Replay interrupted: %v\n", err)
			os.Exit(1)
		}

		if mermaid {
			fmt.Print(graph.GenerateSequence(results))
			return
		}

		color := useColor(cmd)
		if color {
			tui.PrintBanner(os.Stdout)
		}
		tui.NewTracePrinter(os.Stdout, color).Print(results)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Bool("mermaid", false, "Print a Mermaid sequence diagram instead of the trace")
	replayCmd.Flags().String("redis", "", "Also publish lifecycle records to this Redis address")
}
