package hub

import (
	"errors"
	"fmt"
)

// ErrSubscriberPanic matches any PanicError via errors.Is.
var ErrSubscriberPanic = errors.New("subscriber panicked")

// PanicError carries the value recovered from a panicking handler.
type PanicError struct {
	Subscription ID
	Value        any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("subscriber %d panicked: %v", e.Subscription, e.Value)
}

// Is reports whether target is ErrSubscriberPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrSubscriberPanic
}
