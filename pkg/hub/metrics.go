package hub

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by the hub and the installer.
// Collectors are labelled by channel namespace ("app" or "page") only; page
// routes are never used as label values.
type Metrics struct {
	Triggers     *prometheus.CounterVec
	Deliveries   *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	Subscribers  *prometheus.GaugeVec
	UnroutedCall prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is what tests usually want.
// When reg already holds minitap collectors (another host installed with the
// same registry) those are reused, so the counts of both hosts add up.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Triggers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minitap_triggers_total",
				Help: "Total number of channel triggers",
			},
			[]string{"namespace"},
		),
		Deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minitap_deliveries_total",
				Help: "Total number of handler invocations",
			},
			[]string{"namespace"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minitap_subscriber_failures_total",
				Help: "Handlers that returned an error or panicked",
			},
			[]string{"namespace"},
		),
		Subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "minitap_subscriptions",
				Help: "Current number of registered handlers",
			},
			[]string{"namespace"},
		),
		UnroutedCall: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "minitap_unrouted_calls_total",
				Help: "Page lifecycle calls skipped because the instance had no route yet",
			},
		),
	}
	if reg != nil {
		m.Triggers = register(reg, m.Triggers)
		m.Deliveries = register(reg, m.Deliveries)
		m.Failures = register(reg, m.Failures)
		m.Subscribers = register(reg, m.Subscribers)
		m.UnroutedCall = register(reg, m.UnroutedCall)
	}
	return m
}

// register adds c to reg, or returns the equivalent collector reg already has.
// Any other registration error is a programming error and panics, as with
// MustRegister.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	panic(err)
}

// Namespace returns the metric label for a channel: the text before the first
// '@' or ':'.
func Namespace(channel string) string {
	if i := strings.IndexAny(channel, "@:"); i > 0 {
		return channel[:i]
	}
	return "other"
}
