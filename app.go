package minitap

import (
	"github.com/aretw0/minitap/pkg/host"
	"github.com/aretw0/minitap/pkg/intercept"
)

// decorateApp wraps every configured application lifecycle method so that it
// triggers "app:<name>" before running.
func (s *shared) decorateApp(next host.AppConstructor) host.AppConstructor {
	return func(def *host.AppDefinition) any {
		if def == nil {
			def = &host.AppDefinition{}
		}
		def.Methods = intercept.WrapNamed(def.Methods, s.cfg.AppMethods, s.appEffect)
		return next(def)
	}
}

func (s *shared) appEffect(name string) intercept.Effect {
	channel := AppChannel(name)
	return func(self any, args []any) error {
		return s.relay(channel, args)
	}
}

// relay triggers channel and applies the failure policy to the result. The
// hub has already logged each failing handler.
func (s *shared) relay(channel string, args []any) error {
	if err := s.hub.Trigger(channel, args...); err != nil && s.cfg.FailFast() {
		return err
	}
	return nil
}
