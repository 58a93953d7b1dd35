/*
Package guard builds route trees whose every handler sits behind an authorization check.

A [Tree] scopes routes to a resource label and a shared [warden.Guard].
Each route binds one or more HTTP methods on a path to named actions through an [Actions] set:

	g, _ := guard.NewTree("admin:user", myGuard)
	g.Route("/admin/:id", guard.Get("my:get", getHandler).Put("my:update", updateHandler))

Trees nest: a child tree mounts under a path prefix and keeps its own resource label,
so one parent scope can host routes belonging to a different declared resource:

	parent.Nest("/nest", child)

[Tree.Build] flattens the tree into [CompiledRoutes]:
one immutable entry per (path, method) with its resolved resource and action,
its handler wrapped so the guard check runs before it on every request.
The compiled set is plain data consumable by any HTTP engine;
the http/router and http/mount packages register it on gorilla/mux, gin, and echo.

All construction happens single-threaded at startup;
a compiled set is immutable and safe to share across concurrent requests.
*/
package guard
