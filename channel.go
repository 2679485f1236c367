package minitap

// ScopeApp selects application-level events in Tap and Off. Any other scope
// is taken as a page route.
const ScopeApp = "app"

// AppChannel is the hub channel for an application lifecycle event.
func AppChannel(event string) string {
	return "app:" + event
}

// PageChannel is the hub channel for a lifecycle method or custom event of
// the page at route.
func PageChannel(route, event string) string {
	return "page@" + route + ":" + event
}

// Channel maps a public (scope, event) pair to its hub channel.
func Channel(scope, event string) string {
	if scope == ScopeApp {
		return AppChannel(event)
	}
	return PageChannel(scope, event)
}
