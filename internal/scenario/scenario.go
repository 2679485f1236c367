// Package scenario describes a scripted host session (which objects are
// declared, who subscribes and which lifecycle calls the host makes) and
// replays it against a simulated host.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/minitap"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario wraps every decoding and validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the decoded scenario file.
type Scenario struct {
	App   AppSpec    `mapstructure:"app"`
	Pages []PageSpec `mapstructure:"pages"`
	Taps  []TapSpec  `mapstructure:"taps"`
	Steps []Step     `mapstructure:"steps"`
}

// AppSpec lists the lifecycle methods the application declares.
type AppSpec struct {
	Methods []string       `mapstructure:"methods"`
	Globals map[string]any `mapstructure:"globals"`
}

// PageSpec declares one page. Route is assigned after the page is declared.
type PageSpec struct {
	Route   string         `mapstructure:"route"`
	Methods []string       `mapstructure:"methods"`
	Events  []string       `mapstructure:"events"`
	Data    map[string]any `mapstructure:"data"`
}

// TapSpec subscribes to one event. A non-empty Fail makes the subscriber
// return an error with that message.
type TapSpec struct {
	Scope string `mapstructure:"scope"`
	Event string `mapstructure:"event"`
	Fail  string `mapstructure:"fail"`
}

// Step is one host action: Call invokes a lifecycle method, Event fires a
// custom page event. Exactly one of them is set.
type Step struct {
	Target string `mapstructure:"target"`
	Call   string `mapstructure:"call"`
	Event  string `mapstructure:"event"`
	Args   []any  `mapstructure:"args"`
}

// Name returns the method or event name of the step.
func (s Step) Name() string {
	if s.Call != "" {
		return s.Call
	}
	return s.Event
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML into a generic document and maps it onto Scenario.
// Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	var sc Scenario
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &sc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks routes, taps and step targets.
func (sc *Scenario) Validate() error {
	routes := make(map[string]bool, len(sc.Pages))
	for i, p := range sc.Pages {
		if p.Route == "" {
			return fmt.Errorf("%w: pages[%d] has no route", ErrInvalidScenario, i)
		}
		if p.Route == minitap.ScopeApp {
			return fmt.Errorf("%w: pages[%d] uses reserved route %q", ErrInvalidScenario, i, p.Route)
		}
		if routes[p.Route] {
			return fmt.Errorf("%w: duplicate route %q", ErrInvalidScenario, p.Route)
		}
		routes[p.Route] = true
	}

	for i, tap := range sc.Taps {
		if tap.Scope == "" || tap.Event == "" {
			return fmt.Errorf("%w: taps[%d] needs scope and event", ErrInvalidScenario, i)
		}
	}

	for i, s := range sc.Steps {
		if (s.Call == "") == (s.Event == "") {
			return fmt.Errorf("%w: steps[%d] needs exactly one of call or event", ErrInvalidScenario, i)
		}
		switch {
		case s.Target == minitap.ScopeApp:
			if s.Event != "" {
				return fmt.Errorf("%w: steps[%d] custom events only exist on pages", ErrInvalidScenario, i)
			}
		case routes[s.Target]:
		default:
			return fmt.Errorf("%w: steps[%d] unknown target %q", ErrInvalidScenario, i, s.Target)
		}
	}
	return nil
}
