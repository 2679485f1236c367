package host

import (
	"sync"
)

// Method is a lifecycle callback. self is the runtime instance the host
// invokes the method on; args are whatever the host passes.
type Method func(self any, args ...any) (any, error)

// Methods maps lifecycle names (e.g. "onShow") to their callbacks.
type Methods map[string]Method

// AppDefinition is the single argument of the application entry point.
type AppDefinition struct {
	Methods Methods
	Globals map[string]any
}

// PageDefinition is the single argument of the page entry point. Events holds
// additional hooks (e.g. "onBack") that live apart from the lifecycle methods.
type PageDefinition struct {
	Methods Methods
	Events  Methods
	Data    map[string]any
}

// AppConstructor declares the application object. Its return value belongs to
// the host.
type AppConstructor func(def *AppDefinition) any

// PageConstructor declares one page object.
type PageConstructor func(def *PageDefinition) any

// AppDecorator wraps an AppConstructor.
type AppDecorator func(next AppConstructor) AppConstructor

// PageDecorator wraps a PageConstructor.
type PageDecorator func(next PageConstructor) PageConstructor

// Routed is implemented by instances that know their route. Route may return
// "" until the host has assigned one.
type Routed interface {
	Route() string
}

// Host owns the two construction entry points and a small set of process-wide
// slots that extensions use to share state between independent installs.
//
// Base constructors can be replaced with SetApp/SetPage at any time;
// decorators registered with DecorateApp/DecoratePage stay in effect and are
// applied, outermost last-registered, on every call.
type Host struct {
	mu       sync.Mutex
	app      AppConstructor
	page     PageConstructor
	appDecs  []AppDecorator
	pageDecs []PageDecorator
	slots    map[any]any
}

// New creates a Host around the given base constructors. Either may be nil.
func New(app AppConstructor, page PageConstructor) *Host {
	return &Host{
		app:   app,
		page:  page,
		slots: make(map[any]any),
	}
}

var (
	defaultOnce sync.Once
	defaultHost *Host
)

// Default returns the process host. Its constructors are nil until the
// embedding program calls SetApp and SetPage.
func Default() *Host {
	defaultOnce.Do(func() {
		defaultHost = New(nil, nil)
	})
	return defaultHost
}

// SetApp replaces the base application constructor.
func (h *Host) SetApp(fn AppConstructor) {
	h.mu.Lock()
	h.app = fn
	h.mu.Unlock()
}

// SetPage replaces the base page constructor.
func (h *Host) SetPage(fn PageConstructor) {
	h.mu.Lock()
	h.page = fn
	h.mu.Unlock()
}

// DecorateApp adds a decorator to the application entry point.
func (h *Host) DecorateApp(d AppDecorator) {
	h.mu.Lock()
	h.appDecs = append(h.appDecs, d)
	h.mu.Unlock()
}

// DecoratePage adds a decorator to the page entry point.
func (h *Host) DecoratePage(d PageDecorator) {
	h.mu.Lock()
	h.pageDecs = append(h.pageDecs, d)
	h.mu.Unlock()
}

// App declares the application object through the decorated entry point.
func (h *Host) App(def *AppDefinition) any {
	h.mu.Lock()
	fn := h.app
	decs := append([]AppDecorator(nil), h.appDecs...)
	h.mu.Unlock()

	if fn == nil {
		fn = func(*AppDefinition) any { return nil }
	}
	for _, d := range decs {
		fn = d(fn)
	}
	return fn(def)
}

// Page declares a page object through the decorated entry point.
func (h *Host) Page(def *PageDefinition) any {
	h.mu.Lock()
	fn := h.page
	decs := append([]PageDecorator(nil), h.pageDecs...)
	h.mu.Unlock()

	if fn == nil {
		fn = func(*PageDefinition) any { return nil }
	}
	for _, d := range decs {
		fn = d(fn)
	}
	return fn(def)
}

// LoadOrStore returns the slot value for key, calling create to fill it on
// first use. loaded reports whether the value already existed.
// create runs with the host lock held and must not call back into h.
func (h *Host) LoadOrStore(key any, create func() any) (v any, loaded bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.slots[key]; ok {
		return v, true
	}
	v = create()
	h.slots[key] = v
	return v, false
}
