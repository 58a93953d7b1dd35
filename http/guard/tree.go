package guard

import (
	"fmt"

	"github.com/xy-planning-network/warden"
	"github.com/xy-planning-network/warden/logger"
)

// A route is one declared path and a snapshot of the bindings declared on it.
// Snapshotting detaches the route from the caller's [Actions] value,
// so chaining more methods onto it after [Tree.Route] changes nothing here.
type route struct {
	path     string
	bindings []binding
}

func (rt route) has(method string) bool {
	for _, b := range rt.bindings {
		if b.method == method {
			return true
		}
	}

	return false
}

// A mount is a child Tree attached under a path prefix.
type mount struct {
	prefix string
	child  *Tree
}

// A Tree accumulates routes and nested trees under one resource label
// and one shared [warden.Guard].
//
// A Tree is built single-threaded at startup by the call chain constructing it.
// Once [Tree.Build] runs, the tree is frozen: Route and Nest fail with
// ErrAlreadyBuilt, while Build itself stays callable and keeps producing
// the same compiled set.
type Tree struct {
	resource string
	guard    warden.Guard
	roles    []string
	log      logger.Logger
	routes   []route
	children []mount
	built    bool
}

// NewTree constructs a Tree scoping its routes to the resource label,
// gated by g.
//
// The guard is held by reference: every route in the tree and every request
// against those routes consults the same instance.
func NewTree(resource string, g warden.Guard) (*Tree, error) {
	if resource == "" {
		return nil, fmt.Errorf("%w: resource required", warden.ErrBadConfig)
	}

	if g == nil {
		return nil, fmt.Errorf("%w: guard required", warden.ErrBadConfig)
	}

	return &Tree{resource: resource, guard: g}, nil
}

// Resource returns the resource label the Tree's own routes resolve to.
func (t *Tree) Resource() string { return t.resource }

// Roles sets the role list checked - before the resource/action check -
// for every route declared directly on this Tree.
// Nested trees carry their own role lists.
//
// The roles only take effect when the Tree's guard implements [warden.RoleGuard].
// Once the Tree is built, Roles is a no-op.
func (t *Tree) Roles(roles ...string) *Tree {
	if t.built {
		return t
	}

	t.roles = roles
	return t
}

// Logs sets a logger emitting a debug line per guard check
// and an info line per rejection for the Tree's own routes.
// Once the Tree is built, Logs is a no-op.
func (t *Tree) Logs(l logger.Logger) *Tree {
	if t.built {
		return t
	}

	t.log = l
	return t
}

// Route declares the Actions set at path, snapshotting its bindings:
// chaining more methods onto a after Route returns does not reach the tree.
//
// Route fails with ErrConflictingPath when a (path, method) pair is already
// declared directly on this Tree. The same pair under a nested tree is no
// conflict; mounts are distinct scopes.
// An invalid or empty Actions set fails with the error it recorded
// or ErrEmptyActions.
func (t *Tree) Route(path string, a *Actions) error {
	if t.built {
		return fmt.Errorf("%w: cannot add route %q", ErrAlreadyBuilt, path)
	}

	if path == "" {
		return fmt.Errorf("%w: path required", warden.ErrBadConfig)
	}

	if a != nil && a.err != nil {
		return fmt.Errorf("route %q: %w", path, a.err)
	}

	if a == nil || len(a.bindings) == 0 {
		return fmt.Errorf("%w: route %q", ErrEmptyActions, path)
	}

	for _, b := range a.bindings {
		for _, rt := range t.routes {
			if rt.path == path && rt.has(b.method) {
				return fmt.Errorf("%w: %s %s", ErrConflictingPath, b.method, path)
			}
		}
	}

	t.routes = append(t.routes, route{path: path, bindings: append([]binding(nil), a.bindings...)})
	return nil
}

// Nest attaches a fully-formed child Tree under the path prefix.
//
// The child keeps its own resource label, guard, and roles; nesting never
// overwrites them. That is the override rule letting one parent scope host
// routes belonging to a different declared resource.
//
// Nest fails with ErrConflictingMount when the prefix collides with a route
// path or another mount prefix at this level, and rejects nesting that would
// make the tree reachable from itself.
func (t *Tree) Nest(prefix string, child *Tree) error {
	if t.built {
		return fmt.Errorf("%w: cannot nest %q", ErrAlreadyBuilt, prefix)
	}

	if prefix == "" {
		return fmt.Errorf("%w: mount prefix required", warden.ErrBadConfig)
	}

	if child == nil {
		return fmt.Errorf("%w: child tree required", warden.ErrBadConfig)
	}

	if child.reaches(t) {
		return fmt.Errorf("%w: %q creates a cycle", ErrConflictingMount, prefix)
	}

	for _, m := range t.children {
		if m.prefix == prefix {
			return fmt.Errorf("%w: %q already mounted", ErrConflictingMount, prefix)
		}
	}

	for _, rt := range t.routes {
		if rt.path == prefix {
			return fmt.Errorf("%w: %q already routed", ErrConflictingMount, prefix)
		}
	}

	t.children = append(t.children, mount{prefix: prefix, child: child})
	return nil
}

// reaches reports whether target is t or mounted anywhere beneath t.
func (t *Tree) reaches(target *Tree) bool {
	seen := make(map[*Tree]bool)
	stack := []*Tree{t}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == target {
			return true
		}

		if seen[cur] {
			continue
		}
		seen[cur] = true

		for _, m := range cur.children {
			stack = append(stack, m.child)
		}
	}

	return false
}
