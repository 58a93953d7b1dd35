/*
The middleware package defines what a middleware is in warden and the set warden ships with.

The centerpiece is [Guard]: it wraps a handler so an application's [warden.Guard]
is consulted with the route's (resource, action) labels before the handler runs.
[GuardRoles] does the same for a route tree's role list.
The http/guard package applies both automatically when compiling a route tree;
they are exported for wiring one-off routes by hand.

The remaining middlewares cover the ambient concerns of a guarded API:

  - CORS
  - ForceHTTPS
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
	}
*/
package middleware
