package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/minitap/pkg/config"
	"github.com/aretw0/minitap/pkg/record"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().Bool("no-color", false, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	doc := `
app:
  methods: [onShow]
pages:
  - route: pages/index/index
    methods: [onLoad]
taps:
  - {scope: app, event: onShow}
steps:
  - {target: app, call: onShow, args: [1]}
  - {target: pages/index/index, call: onLoad}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestLoadConfig_FlagOverridesLevel(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "minitap.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: warn\non_subscriber_error: abort\n"), 0644))

	cfg, err := loadConfig(newTestCmd(t, "--config", cfgPath, "--log-level", "debug"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.PolicyAbort, cfg.OnSubscriberError)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "minitap.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("on_subscriber_error: retry\n"), 0644))

	_, err := loadConfig(newTestCmd(t, "--config", cfgPath))
	assert.ErrorIs(t, err, config.ErrInvalidPolicy)
}

func TestSession_MirrorAll(t *testing.T) {
	s, err := newSession(newTestCmd(t, "--log-level", "error"), writeScenario(t))
	require.NoError(t, err)

	cancel := s.mirrorAll(noopRecorder{})
	channels := s.player.Tapper().Hub().Channels()
	assert.Equal(t, 1, channels["app:onShow"])
	assert.Equal(t, 1, channels["page@pages/index/index:onLoad"])
	assert.Equal(t, 1, channels["page@pages/index/index:onBack"])

	cancel()
	assert.Empty(t, s.player.Tapper().Hub().Channels())
}

func TestUseColor_Disabled(t *testing.T) {
	assert.False(t, useColor(newTestCmd(t, "--no-color")))
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, record.Record) error { return nil }
