package minitap

import (
	"github.com/aretw0/minitap/pkg/host"
	"github.com/aretw0/minitap/pkg/intercept"
)

// decoratePage wraps the configured custom events under def.Events and the
// configured lifecycle methods of def. Both publish on page@<route>:<name>.
func (s *shared) decoratePage(next host.PageConstructor) host.PageConstructor {
	return func(def *host.PageDefinition) any {
		if def == nil {
			def = &host.PageDefinition{}
		}
		if def.Events == nil {
			def.Events = host.Methods{}
		}
		def.Events = intercept.WrapNamed(def.Events, s.cfg.PageEvents, s.pageEffect)
		def.Methods = intercept.WrapNamed(def.Methods, s.cfg.PageMethods, s.pageEffect)
		return next(def)
	}
}

// pageEffect reads the route from the receiver on every call; the host assigns
// it after the page is declared. Calls made before that are not published.
func (s *shared) pageEffect(name string) intercept.Effect {
	return func(self any, args []any) error {
		route := routeOf(self)
		if route == "" {
			s.metrics.UnroutedCall.Inc()
			s.logger.Warn("page event before route assignment, not published", "event", name)
			return nil
		}
		return s.relay(PageChannel(route, name), args)
	}
}

func routeOf(self any) string {
	if r, ok := self.(host.Routed); ok {
		return r.Route()
	}
	return ""
}
