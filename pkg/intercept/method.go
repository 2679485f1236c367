// Package intercept decorates lifecycle methods with a side effect that runs
// before the original body.
package intercept

import (
	"slices"

	"github.com/aretw0/minitap/pkg/host"
)

// Effect runs before a wrapped method with the same receiver and a copy of
// its arguments. A non-nil error prevents the original from running.
type Effect func(self any, args []any) error

// Noop is used in place of an absent method.
func Noop(self any, args ...any) (any, error) {
	return nil, nil
}

// Wrap returns a method that calls before and then method, forwarding the
// receiver and arguments and returning exactly what method returns.
// A nil method is treated as Noop so the wrapper always exists.
//
// Errors from before are passed through unchanged and the original is not
// called.
func Wrap(method host.Method, before Effect) host.Method {
	if method == nil {
		method = Noop
	}
	if before == nil {
		return method
	}
	return func(self any, args ...any) (any, error) {
		if err := before(self, slices.Clone(args)); err != nil {
			return nil, err
		}
		return method(self, args...)
	}
}

// WrapNamed wraps every name in names inside methods, creating the map when
// it is nil. effect is called once per name to build that name's Effect.
func WrapNamed(methods host.Methods, names []string, effect func(name string) Effect) host.Methods {
	if methods == nil {
		methods = make(host.Methods, len(names))
	}
	for _, name := range names {
		methods[name] = Wrap(methods[name], effect(name))
	}
	return methods
}
