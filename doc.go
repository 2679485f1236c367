/*
Package minitap lets code observe the lifecycle callbacks of a host's application
object and page objects without editing their declarations.

It works by decorating the host's two construction entry points. When the host
declares the application or a page, every configured lifecycle method on the
definition is replaced by a wrapper that first publishes an event on a shared
hub and then runs the original method with the same receiver and arguments,
returning whatever the original returns.

# Channels

	app:<method>             application lifecycle (onLaunch, onShow, ...)
	page@<route>:<method>    page lifecycle and custom page events (onLoad, onBack, ...)

The route of a page is read from the page instance each time a method runs,
because hosts assign it after the page is declared.

# Usage

	sim := host.NewSimulator()
	t := minitap.Install(sim.Host)

	t.Tap("app", "onShow", func(args ...any) error {
		log.Println("app shown with", args)
		return nil
	})
	t.Tap("pages/index/index", "onLoad", func(args ...any) error {
		log.Println("index loaded with", args)
		return nil
	})

Install is idempotent per host: calling it again (from another package, say)
returns a new Tapper on the same hub and does not wrap anything twice.

# Failures

With the default isolate policy a failing or panicking subscriber is logged and
the remaining subscribers and the original method still run. With the abort
policy (config.PolicyAbort) the first failure stops delivery, the original
method is skipped and the error is returned to the host.
*/
package minitap
