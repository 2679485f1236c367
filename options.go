package minitap

import (
	"log/slog"

	"github.com/aretw0/minitap/pkg/config"
	"github.com/aretw0/minitap/pkg/hub"
	"github.com/prometheus/client_golang/prometheus"
)

type options struct {
	cfg        config.Config
	logger     *slog.Logger
	registerer prometheus.Registerer
	metrics    *hub.Metrics
}

// Option configures Install. Options only take effect on the first Install
// for a given host; later installs share what the first one built.
type Option func(*options)

// WithConfig sets the lifecycle name sets and the failure policy.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRegisterer registers the hub metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithMetrics uses an existing set of collectors instead of creating one.
func WithMetrics(m *hub.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
