package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/minitap"
	"github.com/aretw0/minitap/internal/logging"
	"github.com/aretw0/minitap/internal/scenario"
	"github.com/aretw0/minitap/pkg/config"
	"github.com/aretw0/minitap/pkg/record"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// session bundles what every scenario command needs.
type session struct {
	cfg      config.Config
	logger   *slog.Logger
	scenario *scenario.Scenario
	player   *scenario.Player
	registry *prometheus.Registry
}

// loadConfig reads the config file, then env, then the --log-level flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, cfg.Validate()
}

// newSession loads config and the scenario at path and prepares a player
// whose metrics are registered on a private registry.
func newSession(cmd *cobra.Command, path string) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	player := scenario.NewPlayer(sc,
		minitap.WithConfig(cfg),
		minitap.WithLogger(logger),
		minitap.WithRegisterer(reg),
	)

	return &session{
		cfg:      cfg,
		logger:   logger,
		scenario: sc,
		player:   player,
		registry: reg,
	}, nil
}

// mirrorAll forwards every configured lifecycle name of the app and of every
// scenario page to rec.
func (s *session) mirrorAll(rec record.Recorder) (cancel func()) {
	t := s.player.Tapper()
	cancels := []func(){
		minitap.Mirror(t, rec, minitap.ScopeApp, s.cfg.AppMethods...),
	}
	pageNames := append(append([]string(nil), s.cfg.PageMethods...), s.cfg.PageEvents...)
	for _, p := range s.scenario.Pages {
		cancels = append(cancels, minitap.Mirror(t, rec, p.Route, pageNames...))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

// useColor is true when stdout is a terminal and --no-color is not set.
func useColor(cmd *cobra.Command) bool {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
