package scenario

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/minitap"
	"github.com/aretw0/minitap/pkg/host"
)

// Entry is one thing that happened during a step, in order.
type Entry struct {
	Kind   string // "tap" or "original"
	Target string
	Name   string
	Args   []any
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s:%s %v", e.Kind, e.Target, e.Name, e.Args)
}

// Result is the outcome of one step.
type Result struct {
	Index  int
	Step   Step
	Return any
	Err    error
	Trace  []Entry
}

// Player replays a Scenario on its own simulated host.
type Player struct {
	sc  *Scenario
	sim *host.Simulator
	tap *minitap.Tapper

	mu    sync.Mutex
	trace []Entry
}

// NewPlayer creates a simulator and installs minitap on it with opts.
func NewPlayer(sc *Scenario, opts ...minitap.Option) *Player {
	sim := host.NewSimulator()
	return &Player{
		sc:  sc,
		sim: sim,
		tap: minitap.Install(sim.Host, opts...),
	}
}

// Tapper returns the installation used by the player, so callers can add
// their own subscriptions before Play.
func (p *Player) Tapper() *minitap.Tapper {
	return p.tap
}

// Simulator returns the simulated host.
func (p *Player) Simulator() *host.Simulator {
	return p.sim
}

func (p *Player) record(e Entry) {
	p.mu.Lock()
	p.trace = append(p.trace, e)
	p.mu.Unlock()
}

func (p *Player) drain() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.trace
	p.trace = nil
	return out
}

// Play registers the scenario taps, declares the app and pages, assigns
// routes, then runs every step in order. Step failures are reported in the
// Result; Play itself only fails on an invalid scenario or when ctx is done.
func (p *Player) Play(ctx context.Context) ([]Result, error) {
	if err := p.sc.Validate(); err != nil {
		return nil, err
	}

	// 1. Subscriptions
	for _, ts := range p.sc.Taps {
		p.tap.Tap(ts.Scope, ts.Event, func(args ...any) error {
			p.record(Entry{Kind: "tap", Target: ts.Scope, Name: ts.Event, Args: args})
			if ts.Fail != "" {
				return errors.New(ts.Fail)
			}
			return nil
		})
	}

	// 2. Declarations
	app, _ := p.sim.App(&host.AppDefinition{
		Methods: p.stubs(minitap.ScopeApp, p.sc.App.Methods),
		Globals: p.sc.App.Globals,
	}).(*host.Instance)

	pages := make(map[string]*host.Instance, len(p.sc.Pages))
	for _, ps := range p.sc.Pages {
		inst, _ := p.sim.Page(&host.PageDefinition{
			Methods: p.stubs(ps.Route, ps.Methods),
			Events:  p.stubs(ps.Route, ps.Events),
			Data:    ps.Data,
		}).(*host.Instance)
		pages[ps.Route] = inst
	}

	// 3. Routes are known only once the pages exist.
	for route, inst := range pages {
		inst.SetRoute(route)
	}
	p.drain()

	// 4. Steps
	results := make([]Result, 0, len(p.sc.Steps))
	for i, step := range p.sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := Result{Index: i, Step: step}
		switch {
		case step.Target == minitap.ScopeApp:
			res.Return, res.Err = app.Invoke(step.Call, step.Args...)
		case step.Call != "":
			res.Return, res.Err = pages[step.Target].Invoke(step.Call, step.Args...)
		default:
			res.Return, res.Err = pages[step.Target].Emit(step.Event, step.Args...)
		}
		res.Trace = p.drain()
		results = append(results, res)
	}
	return results, nil
}

// stubs builds original methods that record their invocation and return
// "<name> done".
func (p *Player) stubs(target string, names []string) host.Methods {
	methods := make(host.Methods, len(names))
	for _, name := range names {
		methods[name] = func(self any, args ...any) (any, error) {
			p.record(Entry{Kind: "original", Target: target, Name: name, Args: args})
			return name + " done", nil
		}
	}
	return methods
}
