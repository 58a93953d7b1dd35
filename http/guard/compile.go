package guard

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/warden/http/middleware"
	"github.com/xy-planning-network/warden/logger"
)

// A CompiledRoute is one flattened, guard-wrapped (path, method) leaf of a Tree.
//
// Path is the full path from the root of the built tree: every mount prefix
// on the way down followed by the route's own path. Resource and Action are
// the labels the guard is consulted with. Handler is the original handler
// wrapped with that check; registering it on an HTTP engine is all that is
// left to do.
//
// A CompiledRoute is created once during [Tree.Build] and never mutated.
type CompiledRoute struct {
	Path     string
	Method   string
	Resource string
	Action   string
	Handler  http.Handler
}

// CompiledRoutes is the dispatch table a built Tree compiles into,
// in declaration order.
type CompiledRoutes []CompiledRoute

// Build flattens the Tree into CompiledRoutes and freezes it.
//
// Traversal is depth-first with an explicit stack, so adversarially deep
// nesting cannot grow the call stack. A tree's own routes always resolve
// to that tree's resource label, never an ancestor's. Output order is
// deterministic: a tree's routes in declaration order, then its mounts in
// declaration order.
//
// Build is idempotent: repeat calls on the same tree produce route sets
// with identical contents and ordering.
func (t *Tree) Build() CompiledRoutes {
	type frame struct {
		tree   *Tree
		prefix string
	}

	var out CompiledRoutes
	stack := []frame{{tree: t, prefix: ""}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, rt := range f.tree.routes {
			for _, b := range rt.bindings {
				out = append(out, CompiledRoute{
					Path:     joinPaths(f.prefix, rt.path),
					Method:   b.method,
					Resource: f.tree.resource,
					Action:   b.action,
					Handler:  f.tree.wrap(b),
				})
			}
		}

		// NOTE: push in reverse so mounts pop in declaration order
		for i := len(f.tree.children) - 1; i >= 0; i-- {
			m := f.tree.children[i]
			stack = append(stack, frame{tree: m.child, prefix: joinPaths(f.prefix, m.prefix)})
		}

		f.tree.built = true
	}

	return out
}

// wrap produces the dispatch entry for one binding: the original handler
// behind the tree's role check (when set) and the guard check for
// (tree resource, binding action), in that order.
func (t *Tree) wrap(b binding) http.Handler {
	var adpts []middleware.Adapter
	if t.log != nil {
		adpts = append(adpts, logChecks(t.log, t.resource, b.action))
	}

	if len(t.roles) > 0 {
		adpts = append(adpts, middleware.GuardRoles(t.guard, t.roles...))
	}

	adpts = append(adpts, middleware.Guard(t.guard, t.resource, b.action))
	return middleware.Chain(b.handler, adpts...)
}

// logChecks emits a debug line ahead of each guard check
// and an info line when the check short-circuited the request.
func logChecks(l logger.Logger, resource, action string) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l.Debug(fmt.Sprintf("guard check %s %s resource=%s action=%s", r.Method, r.URL.Path, resource, action), nil)

			sw := &statusWriter{ResponseWriter: w}
			h.ServeHTTP(sw, r)
			if sw.status == http.StatusForbidden || sw.status == http.StatusUnauthorized {
				l.Info(fmt.Sprintf("guard rejected %s %s resource=%s action=%s", r.Method, r.URL.Path, resource, action), &logger.LogContext{Request: r})
			}
		})
	}
}

// statusWriter records the status code written downstream.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to [http.ResponseController],
// keeping Flusher and Hijacker reachable through the wrap.
func (sw *statusWriter) Unwrap() http.ResponseWriter { return sw.ResponseWriter }

// joinPaths concatenates a mount prefix and a path,
// normalizing the slash between and trimming a trailing one.
func joinPaths(prefix, path string) string {
	p := strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return p
}
