/*
Package hub provides the named-channel registry that lifecycle events are
published on.

Channels are plain strings. Handlers are registered with On, removed with Off
and invoked synchronously, in registration order, by Trigger:

	h := hub.New()
	id := h.On("app:onShow", func(args ...any) error {
		fmt.Println("shown", args)
		return nil
	})
	_ = h.Trigger("app:onShow", 42)
	h.Off("app:onShow", id)

A Hub is safe for concurrent use. Delivery is never deferred: Trigger returns
only after every handler has returned.
*/
package hub
