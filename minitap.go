package minitap

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aretw0/minitap/internal/logging"
	"github.com/aretw0/minitap/pkg/config"
	"github.com/aretw0/minitap/pkg/host"
	"github.com/aretw0/minitap/pkg/hub"
)

// sharedKey is the host slot holding the state shared by every Install.
type sharedKey struct{}

// shared is created once per host. Its presence in the host slot means the
// hub is shared; once guards wrapping of the entry points.
type shared struct {
	hub     *hub.Hub
	cfg     config.Config
	logger  *slog.Logger
	metrics *hub.Metrics

	once     sync.Once
	wrapped  atomic.Bool
	installs atomic.Int32
}

func newShared(o options) *shared {
	m := o.metrics
	if m == nil {
		m = hub.NewMetrics(o.registerer)
	}
	return &shared{
		hub: hub.New(
			hub.WithLogger(o.logger),
			hub.WithMetrics(m),
			hub.WithFailFast(o.cfg.FailFast()),
		),
		cfg:     o.cfg,
		logger:  o.logger,
		metrics: m,
	}
}

// Tapper is one installation of minitap on a host. Every Tapper for the same
// host publishes and subscribes on the same hub.
type Tapper struct {
	shared *shared
}

// Install wraps the host's application and page entry points, at most once
// per host, and returns a Tapper bound to the host's shared hub.
//
// Install may be called any number of times (for instance by independent
// packages that each embed minitap). Only the first call wraps the entry
// points and only its options are used.
func Install(h *host.Host, opts ...Option) *Tapper {
	o := options{
		cfg:    config.Default(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	v, loaded := h.LoadOrStore(sharedKey{}, func() any {
		return newShared(o)
	})
	s := v.(*shared)
	if loaded {
		s.logger.Debug("reusing shared hub")
	}

	s.once.Do(func() {
		h.DecorateApp(s.decorateApp)
		h.DecoratePage(s.decoratePage)
		s.wrapped.Store(true)
		s.logger.Debug("entry points wrapped",
			"app_methods", len(s.cfg.AppMethods),
			"page_methods", len(s.cfg.PageMethods),
			"page_events", len(s.cfg.PageEvents),
		)
	})
	s.installs.Add(1)

	return &Tapper{shared: s}
}

// Tap subscribes fn to event in scope. scope is ScopeApp or a page route.
// Event names are not validated; a misspelled name subscribes to a channel
// that is never fired.
func (t *Tapper) Tap(scope, event string, fn hub.Handler) hub.ID {
	return t.shared.hub.On(Channel(scope, event), fn)
}

// Off removes subscriptions for event in scope: the given ids, or all of them
// when none are given. It returns how many were removed.
func (t *Tapper) Off(scope, event string, ids ...hub.ID) int {
	return t.shared.hub.Off(Channel(scope, event), ids...)
}

// Hub returns the shared hub.
func (t *Tapper) Hub() *hub.Hub {
	return t.shared.hub
}

// Config returns the configuration the entry points were wrapped with.
func (t *Tapper) Config() config.Config {
	return t.shared.cfg
}

// Metrics returns the collectors updated by the shared hub.
func (t *Tapper) Metrics() *hub.Metrics {
	return t.shared.metrics
}

// Installs reports how many times Install ran against this Tapper's host.
func (t *Tapper) Installs() int {
	return int(t.shared.installs.Load())
}

// Wrapped reports whether the host entry points have been decorated.
func (t *Tapper) Wrapped() bool {
	return t.shared.wrapped.Load()
}

var (
	defaultOnce   sync.Once
	defaultTapper *Tapper
)

// Default returns the Tapper installed on host.Default with default options.
func Default() *Tapper {
	defaultOnce.Do(func() {
		defaultTapper = Install(host.Default())
	})
	return defaultTapper
}

// Tap subscribes on the process host. See (*Tapper).Tap.
func Tap(scope, event string, fn hub.Handler) hub.ID {
	return Default().Tap(scope, event, fn)
}

// Off unsubscribes on the process host. See (*Tapper).Off.
func Off(scope, event string, ids ...hub.ID) int {
	return Default().Off(scope, event, ids...)
}
