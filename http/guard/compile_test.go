package guard_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/warden"
	"github.com/xy-planning-network/warden/http/guard"
	"github.com/xy-planning-network/warden/logger"
)

// memoryLogger records every line it is handed.
type memoryLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *memoryLogger) Debug(msg string, _ *logger.LogContext) { l.record(msg) }
func (l *memoryLogger) Error(msg string, _ *logger.LogContext) { l.record(msg) }
func (l *memoryLogger) Fatal(msg string, _ *logger.LogContext) { l.record(msg) }
func (l *memoryLogger) Info(msg string, _ *logger.LogContext)  { l.record(msg) }
func (l *memoryLogger) Warn(msg string, _ *logger.LogContext)  { l.record(msg) }
func (l *memoryLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }

func (l *memoryLogger) record(msg string) {
	l.mu.Lock()
	l.lines = append(l.lines, msg)
	l.mu.Unlock()
}

// leaf is the (path, method, resource, action) identity of a CompiledRoute.
type leaf struct {
	path, method, resource, action string
}

func identities(crs guard.CompiledRoutes) []leaf {
	out := make([]leaf, 0, len(crs))
	for _, cr := range crs {
		out = append(out, leaf{cr.Path, cr.Method, cr.Resource, cr.Action})
	}

	return out
}

func TestBuildFlattensNestedTrees(t *testing.T) {
	// Arrange: an outer tree with /admin/:id under two methods,
	// plus an inner tree with the same resource mounted at /nest
	g := newStubGuard()

	inner, err := guard.NewTree("admin:user", g)
	require.Nil(t, err)
	require.Nil(t, inner.Route("/:id", guard.Get("my:get", teapotHandler())))

	outer, err := guard.NewTree("admin:user", g)
	require.Nil(t, err)
	require.Nil(t, outer.Route("/admin/:id", guard.Get("my:get", teapotHandler()).Put("my:update", teapotHandler())))
	require.Nil(t, outer.Nest("/nest", inner))

	// Act
	crs := outer.Build()

	// Assert
	require.Equal(t, []leaf{
		{"/admin/:id", http.MethodGet, "admin:user", "my:get"},
		{"/admin/:id", http.MethodPut, "admin:user", "my:update"},
		{"/nest/:id", http.MethodGet, "admin:user", "my:get"},
	}, identities(crs))
}

func TestBuildResourceOverride(t *testing.T) {
	// Arrange: a child tree keeps its own resource under a parent with another
	g := newStubGuard()

	child, err := guard.NewTree("my:profile", g)
	require.Nil(t, err)
	require.Nil(t, child.Route("/me", guard.Get("profile:read", teapotHandler())))

	parent, err := guard.NewTree("admin:user", g)
	require.Nil(t, err)
	require.Nil(t, parent.Route("/users", guard.Get("user:list", teapotHandler())))
	require.Nil(t, parent.Nest("/profile", child))

	// Act
	crs := parent.Build()

	// Assert
	require.Equal(t, []leaf{
		{"/users", http.MethodGet, "admin:user", "user:list"},
		{"/profile/me", http.MethodGet, "my:profile", "profile:read"},
	}, identities(crs))
}

func TestBuildDuplicateLeafAcrossMounts(t *testing.T) {
	// Arrange: the same (path, method) under two different mounts is no conflict
	g := newStubGuard()

	a, err := guard.NewTree("res:a", g)
	require.Nil(t, err)
	require.Nil(t, a.Route("/:id", guard.Get("a:get", teapotHandler())))

	b, err := guard.NewTree("res:b", g)
	require.Nil(t, err)
	require.Nil(t, b.Route("/:id", guard.Get("b:get", teapotHandler())))

	parent, err := guard.NewTree("res:parent", g)
	require.Nil(t, err)
	require.Nil(t, parent.Nest("/a", a))
	require.Nil(t, parent.Nest("/b", b))

	// Act
	crs := parent.Build()

	// Assert
	require.Equal(t, []leaf{
		{"/a/:id", http.MethodGet, "res:a", "a:get"},
		{"/b/:id", http.MethodGet, "res:b", "b:get"},
	}, identities(crs))
}

func TestBuildIsIdempotent(t *testing.T) {
	// Arrange
	g := newStubGuard()
	tree, err := guard.NewTree("admin:user", g)
	require.Nil(t, err)
	require.Nil(t, tree.Route("/admin", guard.Get("my:get", teapotHandler()).Post("my:create", teapotHandler())))

	// Act
	first := tree.Build()
	second := tree.Build()

	// Assert
	require.Equal(t, identities(first), identities(second))
}

func TestRolesAndLogsFreezeAfterBuild(t *testing.T) {
	// Arrange: build first, with a guard that would reject any role check
	g := newStubGuard()
	g.roles = warden.NewRejection(http.StatusForbidden, "wrong role")
	l := &memoryLogger{}

	tree, err := guard.NewTree("admin:user", g)
	require.Nil(t, err)
	require.Nil(t, tree.Route("/admin", guard.Get("my:get", teapotHandler())))
	first := tree.Build()

	// Act: late setters on a built tree, then rebuild
	tree.Roles("admin").Logs(l)
	second := tree.Build()

	// Assert: neither set picked up the role check or the logger
	for _, crs := range []guard.CompiledRoutes{first, second} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com/admin", nil)
		crs[0].Handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusTeapot, w.Code)
	}
	require.Empty(t, l.lines)
}

func TestRouteSnapshotsActions(t *testing.T) {
	// Arrange: two sets on one path, the second held onto by the caller
	g := newStubGuard()

	tree, err := guard.NewTree("admin:user", g)
	require.Nil(t, err)
	require.Nil(t, tree.Route("/p", guard.Get("my:get", teapotHandler())))

	late := guard.Put("my:update", teapotHandler())
	require.Nil(t, tree.Route("/p", late))

	// Act: chaining after Route never reaches the registered route
	late.Get("my:other", teapotHandler())
	crs := tree.Build()

	// Assert
	require.Equal(t, []leaf{
		{"/p", http.MethodGet, "admin:user", "my:get"},
		{"/p", http.MethodPut, "admin:user", "my:update"},
	}, identities(crs))
}

func TestLoggedHandlerKeepsFlusher(t *testing.T) {
	// Arrange: a logging tree whose handler flushes mid-response
	g := newStubGuard()
	l := &memoryLogger{}

	flush := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Nil(t, http.NewResponseController(w).Flush())
	})

	tree, err := guard.NewTree("admin:user", g)
	require.Nil(t, err)
	tree.Logs(l)
	require.Nil(t, tree.Route("/stream", guard.Get("my:get", flush)))

	// Act
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/stream", nil)
	tree.Build()[0].Handler.ServeHTTP(w, r)

	// Assert
	require.True(t, w.Flushed)
}

func TestBuildSurvivesDeepNesting(t *testing.T) {
	// Arrange: a pathological mount chain far deeper than any real app
	g := newStubGuard()
	leafTree, err := guard.NewTree("res:leaf", g)
	require.Nil(t, err)
	require.Nil(t, leafTree.Route("/end", guard.Get("leaf:get", teapotHandler())))

	cur := leafTree
	for i := 0; i < 2_000; i++ {
		next, err := guard.NewTree("res:mid", g)
		require.Nil(t, err)
		require.Nil(t, next.Nest("/d", cur))
		cur = next
	}

	// Act
	crs := cur.Build()

	// Assert
	require.Len(t, crs, 1)
	require.Equal(t, "res:leaf", crs[0].Resource)
	require.Len(t, crs[0].Path, len("/end")+2_000*len("/d"))
}

func TestCompiledHandlerGuardsRequests(t *testing.T) {
	// Arrange: reject my:update, pass my:get
	g := newStubGuard()
	g.reject["my:update"] = warden.NewRejection(http.StatusForbidden, "no")

	var updates int
	update := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		updates++
	})

	tree, err := guard.NewTree("admin:user", g)
	require.Nil(t, err)
	require.Nil(t, tree.Route("/admin/:id", guard.Get("my:get", teapotHandler()).Put("my:update", update)))

	crs := tree.Build()
	require.Len(t, crs, 2)

	// Act: GET proceeds
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/admin/1", nil)
	crs[0].Handler.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, [][2]string{{"admin:user", "my:get"}}, g.calls)

	// Act: PUT is rejected before the handler's side effect
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPut, "https://example.com/admin/1", nil)
	crs[1].Handler.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "no\n", w.Body.String())
	require.Zero(t, updates)
	require.Equal(t, [][2]string{{"admin:user", "my:get"}, {"admin:user", "my:update"}}, g.calls)
}

func TestCompiledHandlerChecksRolesFirst(t *testing.T) {
	// Arrange
	g := newStubGuard()
	g.roles = warden.NewRejection(http.StatusForbidden, "wrong role")

	tree, err := guard.NewTree("admin:user", g)
	require.Nil(t, err)
	tree.Roles("admin")
	require.Nil(t, tree.Route("/admin", guard.Get("my:get", teapotHandler())))

	crs := tree.Build()

	// Act
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/admin", nil)
	crs[0].Handler.ServeHTTP(w, r)

	// Assert: the role check short-circuits before Check runs
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "wrong role\n", w.Body.String())
	require.Empty(t, g.calls)
}

func TestBuildOrderWithInterleavedDeclarations(t *testing.T) {
	// Arrange: several routes and mounts, checking full declaration order
	g := newStubGuard()

	sub1, err := guard.NewTree("res:one", g)
	require.Nil(t, err)
	require.Nil(t, sub1.Route("/x", guard.Get("one:get", teapotHandler())))

	sub2, err := guard.NewTree("res:two", g)
	require.Nil(t, err)
	require.Nil(t, sub2.Route("/y", guard.Get("two:get", teapotHandler())))

	root, err := guard.NewTree("res:root", g)
	require.Nil(t, err)
	require.Nil(t, root.Route("/a", guard.Get("root:a", teapotHandler())))
	require.Nil(t, root.Nest("/one", sub1))
	require.Nil(t, root.Route("/b", guard.Get("root:b", teapotHandler())))
	require.Nil(t, root.Nest("/two", sub2))

	// Act
	crs := root.Build()

	// Assert: own routes first in order, then mounts in order
	require.Equal(t, []leaf{
		{"/a", http.MethodGet, "res:root", "root:a"},
		{"/b", http.MethodGet, "res:root", "root:b"},
		{"/one/x", http.MethodGet, "res:one", "one:get"},
		{"/two/y", http.MethodGet, "res:two", "two:get"},
	}, identities(crs))
}

func ExampleTree_Build() {
	g := newStubGuard()

	tree, _ := guard.NewTree("admin:user", g)
	_ = tree.Route("/admin/:id", guard.Get("my:get", teapotHandler()).Put("my:update", teapotHandler()))

	for _, cr := range tree.Build() {
		fmt.Printf("%s %s -> (%s, %s)\n", cr.Method, cr.Path, cr.Resource, cr.Action)
	}
	// Output:
	// GET /admin/:id -> (admin:user, my:get)
	// PUT /admin/:id -> (admin:user, my:update)
}
