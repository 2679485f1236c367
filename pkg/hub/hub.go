package hub

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/aretw0/minitap/internal/logging"
	"go.uber.org/multierr"
)

// Handler receives the arguments passed to Trigger. Each handler gets its own
// copy of the argument slice; the values in it are shared.
type Handler func(args ...any) error

// ID identifies one registration made with On. IDs are unique per Hub and
// never reused; the zero ID is never issued.
type ID uint64

type subscription struct {
	id ID
	fn Handler
}

// Hub is a named-channel publish/subscribe registry with synchronous fan-out.
type Hub struct {
	mu       sync.RWMutex
	channels map[string][]subscription

	next     atomic.Uint64
	failFast bool
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger used to report handler failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(h *Hub) {
		h.metrics = m
	}
}

// WithFailFast makes Trigger stop at the first failing handler and lets
// panics propagate to the caller.
func WithFailFast(enabled bool) Option {
	return func(h *Hub) {
		h.failFast = enabled
	}
}

// New creates an empty Hub.
func New(opts ...Option) *Hub {
	h := &Hub{
		channels: make(map[string][]subscription),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// On registers fn for channel and returns its ID.
// The same function may be registered any number of times; each registration
// is delivered separately. A nil fn is ignored and yields the zero ID.
func (h *Hub) On(channel string, fn Handler) ID {
	if fn == nil {
		return 0
	}
	id := ID(h.next.Add(1))

	h.mu.Lock()
	h.channels[channel] = append(h.channels[channel], subscription{id: id, fn: fn})
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.Subscribers.WithLabelValues(Namespace(channel)).Inc()
	}
	return id
}

// Off removes registrations from channel. With no ids every registration on
// the channel is removed; otherwise only the listed ones. It returns the
// number of registrations removed.
func (h *Hub) Off(channel string, ids ...ID) int {
	h.mu.Lock()
	subs := h.channels[channel]
	var kept []subscription
	if len(ids) > 0 {
		drop := make(map[ID]struct{}, len(ids))
		for _, id := range ids {
			drop[id] = struct{}{}
		}
		for _, s := range subs {
			if _, ok := drop[s.id]; !ok {
				kept = append(kept, s)
			}
		}
	}
	removed := len(subs) - len(kept)
	if len(kept) == 0 {
		delete(h.channels, channel)
	} else {
		h.channels[channel] = kept
	}
	h.mu.Unlock()

	if h.metrics != nil && removed > 0 {
		h.metrics.Subscribers.WithLabelValues(Namespace(channel)).Sub(float64(removed))
	}
	return removed
}

// Trigger invokes every handler registered on channel, in registration order,
// on the caller's goroutine. Handlers registered or removed while a Trigger is
// running take effect from the next Trigger.
//
// By default every handler runs; errors and recovered panics are combined and
// returned. With WithFailFast the first error is returned immediately and
// panics are not recovered.
func (h *Hub) Trigger(channel string, args ...any) error {
	h.mu.RLock()
	subs := h.channels[channel]
	h.mu.RUnlock()

	ns := Namespace(channel)
	if h.metrics != nil {
		h.metrics.Triggers.WithLabelValues(ns).Inc()
	}

	var errs error
	for _, s := range subs {
		if h.metrics != nil {
			h.metrics.Deliveries.WithLabelValues(ns).Inc()
		}

		delivered := slices.Clone(args)
		var err error
		if h.failFast {
			err = s.fn(delivered...)
		} else {
			err = h.invoke(s, delivered)
		}
		if err == nil {
			continue
		}

		if h.metrics != nil {
			h.metrics.Failures.WithLabelValues(ns).Inc()
		}
		h.logger.Warn("handler failed", "channel", channel, "subscription", uint64(s.id), "error", err)
		if h.failFast {
			return fmt.Errorf("channel %s: %w", channel, err)
		}
		errs = multierr.Append(errs, fmt.Errorf("channel %s: %w", channel, err))
	}
	return errs
}

// invoke calls one handler, converting a panic into an error.
func (h *Hub) invoke(s subscription, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Subscription: s.id, Value: r}
		}
	}()
	return s.fn(args...)
}

// Len returns the number of handlers registered on channel.
func (h *Hub) Len(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// Channels returns a snapshot of channel names and their handler counts.
func (h *Hub) Channels() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]int, len(h.channels))
	for name, subs := range h.channels {
		out[name] = len(subs)
	}
	return out
}
