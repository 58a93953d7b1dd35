/*
Package router adapts a compiled guard route set to gorilla/mux.

The package leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

[*Router.HandleGuarded] is the seam to the http/guard package:
it takes the [guard.CompiledRoutes] a built tree emits -
each entry already wrapped with its guard check -
and registers them on the underlying [mux.Router],
translating path parameter syntax on the way.
The Router never inspects resources or actions;
by the time a route is compiled, the guard check is part of the handler.
*/
package router
