package host

import (
	"fmt"
	"sync"
)

// Kind distinguishes application instances from page instances.
type Kind string

const (
	KindApp  Kind = "app"
	KindPage Kind = "page"
)

// Instance is the runtime object produced by the simulator's constructors.
// The route of a page is assigned after construction, the same way real hosts
// do it, so code under test observes an empty route until SetRoute is called.
type Instance struct {
	Kind Kind
	Data map[string]any

	mu      sync.RWMutex
	route   string
	methods Methods
	events  Methods
}

// Route implements Routed.
func (i *Instance) Route() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.route
}

// SetRoute assigns the page route.
func (i *Instance) SetRoute(route string) {
	i.mu.Lock()
	i.route = route
	i.mu.Unlock()
}

// Has reports whether the instance declares a lifecycle method called name.
func (i *Instance) Has(name string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.methods[name] != nil
}

// Invoke calls a lifecycle method with the instance as receiver. Calling an
// undeclared method is a no-op.
func (i *Instance) Invoke(name string, args ...any) (any, error) {
	i.mu.RLock()
	fn := i.methods[name]
	i.mu.RUnlock()
	if fn == nil {
		return nil, nil
	}
	return fn(i, args...)
}

// Emit calls a hook from the page's Events set.
func (i *Instance) Emit(event string, args ...any) (any, error) {
	i.mu.RLock()
	fn := i.events[event]
	i.mu.RUnlock()
	if fn == nil {
		return nil, nil
	}
	return fn(i, args...)
}

func (i *Instance) String() string {
	if i.Kind == KindPage {
		return fmt.Sprintf("page(%s)", i.Route())
	}
	return string(i.Kind)
}

// Simulator is an in-process stand-in for a host framework. Its constructors
// return *Instance values and it remembers every instance it created.
type Simulator struct {
	*Host

	mu    sync.Mutex
	app   *Instance
	pages []*Instance
}

// NewSimulator returns a Simulator whose entry points build Instances.
func NewSimulator() *Simulator {
	s := &Simulator{}
	s.Host = New(s.newApp, s.newPage)
	return s
}

func (s *Simulator) newApp(def *AppDefinition) any {
	inst := &Instance{Kind: KindApp}
	if def != nil {
		inst.methods = def.Methods
		inst.Data = def.Globals
	}
	s.mu.Lock()
	s.app = inst
	s.mu.Unlock()
	return inst
}

func (s *Simulator) newPage(def *PageDefinition) any {
	inst := &Instance{Kind: KindPage}
	if def != nil {
		inst.methods = def.Methods
		inst.events = def.Events
		inst.Data = def.Data
	}
	s.mu.Lock()
	s.pages = append(s.pages, inst)
	s.mu.Unlock()
	return inst
}

// AppInstance returns the most recently declared application instance.
func (s *Simulator) AppInstance() *Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app
}

// Pages returns the declared page instances in declaration order.
func (s *Simulator) Pages() []*Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Instance(nil), s.pages...)
}
