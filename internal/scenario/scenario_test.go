package scenario

import (
	"context"
	"testing"

	"github.com/aretw0/minitap"
	"github.com/aretw0/minitap/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Basic(t *testing.T) {
	sc, err := Load("testdata/basic.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"onLaunch", "onShow"}, sc.App.Methods)
	assert.Equal(t, "1.0.0", sc.App.Globals["version"])
	require.Len(t, sc.Pages, 2)
	assert.Equal(t, []string{"onBack"}, sc.Pages[0].Events)
	require.Len(t, sc.Steps, 5)
	assert.Equal(t, []any{42}, sc.Steps[1].Args)
	assert.Equal(t, "onBack", sc.Steps[3].Name())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":      "apps: {}",
		"no route":         "pages: [{methods: [onLoad]}]",
		"reserved route":   "pages: [{route: app}]",
		"duplicate route":  "pages: [{route: a}, {route: a}]",
		"tap without name": "taps: [{scope: app}]",
		"unknown target":   "steps: [{target: pages/x, call: onLoad}]",
		"call and event":   "pages: [{route: a}]\nsteps: [{target: a, call: onLoad, event: onBack}]",
		"neither":          "steps: [{target: app}]",
		"event on app":     "steps: [{target: app, event: onBack}]",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("steps: [unclosed"))
	assert.Error(t, err)
}

func TestPlayer_Play(t *testing.T) {
	sc, err := Load("testdata/basic.yaml")
	require.NoError(t, err)

	results, err := NewPlayer(sc).Play(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 5)

	// onLaunch has no tap: only the original runs.
	assert.Equal(t, "onLaunch done", results[0].Return)
	require.Len(t, results[0].Trace, 1)
	assert.Equal(t, "original", results[0].Trace[0].Kind)

	// onShow(42): tap first, then the original, same args.
	show := results[1]
	assert.NoError(t, show.Err)
	assert.Equal(t, "onShow done", show.Return)
	require.Len(t, show.Trace, 2)
	assert.Equal(t, Entry{Kind: "tap", Target: "app", Name: "onShow", Args: []any{42}}, show.Trace[0])
	assert.Equal(t, Entry{Kind: "original", Target: "app", Name: "onShow", Args: []any{42}}, show.Trace[1])

	load := results[2]
	require.Len(t, load.Trace, 2)
	assert.Equal(t, "tap", load.Trace[0].Kind)
	assert.Equal(t, []any{map[string]any{"id": 1}}, load.Trace[0].Args)

	back := results[3]
	require.Len(t, back.Trace, 2)
	assert.Equal(t, "onBack", back.Trace[0].Name)
	assert.Equal(t, "onBack done", back.Return)

	// pages/cart/cart declares nothing; the wrapper is a no-op with no taps.
	assert.Nil(t, results[4].Return)
	assert.Empty(t, results[4].Trace)
}

func TestPlayer_AbortPolicy(t *testing.T) {
	sc, err := Parse([]byte(`
app:
  methods: [onShow]
taps:
  - {scope: app, event: onShow, fail: "analytics down"}
steps:
  - {target: app, call: onShow}
`))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.OnSubscriberError = config.PolicyAbort
	results, err := NewPlayer(sc, minitap.WithConfig(cfg)).Play(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.ErrorContains(t, results[0].Err, "analytics down")
	assert.Nil(t, results[0].Return)
	require.Len(t, results[0].Trace, 1, "original is skipped")
	assert.Equal(t, "tap", results[0].Trace[0].Kind)
}

func TestPlayer_IsolatePolicy(t *testing.T) {
	sc, err := Parse([]byte(`
app:
  methods: [onShow]
taps:
  - {scope: app, event: onShow, fail: "analytics down"}
steps:
  - {target: app, call: onShow}
`))
	require.NoError(t, err)

	results, err := NewPlayer(sc).Play(context.Background())
	require.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "onShow done", results[0].Return)
	assert.Len(t, results[0].Trace, 2)
}

func TestPlayer_CanceledContext(t *testing.T) {
	sc, err := Load("testdata/basic.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewPlayer(sc).Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestPlayer_UnvalidatedScenario(t *testing.T) {
	sc := &Scenario{
		Pages: []PageSpec{{Route: "pages/a", Methods: []string{"onLoad"}}},
		Steps: []Step{{Target: "pages/missing", Call: "onLoad"}},
	}

	var results []Result
	var err error
	require.NotPanics(t, func() {
		results, err = NewPlayer(sc).Play(context.Background())
	})
	assert.ErrorIs(t, err, ErrInvalidScenario)
	assert.Empty(t, results)
}

func TestPlayer_ExtraSubscribers(t *testing.T) {
	sc, err := Load("testdata/basic.yaml")
	require.NoError(t, err)

	p := NewPlayer(sc)
	seen := 0
	p.Tapper().Tap("pages/cart/cart", "onShow", func(args ...any) error { seen++; return nil })

	_, err = p.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
	assert.Len(t, p.Simulator().Pages(), 2)
}
