/*
Package main provides a toy example use of warden's http stack.

Run it, then:

	curl -i localhost:3000/protect/admin/1        # 200, guard passed my:get
	curl -i -X PUT localhost:3000/protect/admin/1 # 403, guard rejected my:update
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/warden"
	"github.com/xy-planning-network/warden/http/guard"
	"github.com/xy-planning-network/warden/http/middleware"
	"github.com/xy-planning-network/warden/http/router"
	"github.com/xy-planning-network/warden/logger"
)

// exampleGuard rejects every "my:update" and lets everything else through.
type exampleGuard struct {
	l logger.Logger
}

func (g *exampleGuard) Check(_ context.Context, resource, action string) error {
	if action == "my:update" {
		return warden.NewRejection(http.StatusForbidden, fmt.Sprintf("resource=%s action=%s", resource, action))
	}

	return nil
}

func (g *exampleGuard) CheckRoles(_ context.Context, roles []string) error {
	g.l.Debug(fmt.Sprintf("roles checked: %v", roles), nil)
	return nil
}

func handler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s: hello from %s\n", name, r.URL.Path)
	})
}

func main() {
	env := warden.EnvVarOrEnv("ENVIRONMENT", warden.Development)
	l := logger.New(logger.WithLevel(logger.LogLevelDebug))
	g := &exampleGuard{l: l}

	profile, err := guard.NewTree("my:profile", g)
	if err != nil {
		l.Fatal(err.Error(), nil)
		os.Exit(1)
	}

	if err := profile.Route("/:id", guard.Get("my:get", handler("profile")).Put("my:update", handler("profile"))); err != nil {
		l.Fatal(err.Error(), nil)
		os.Exit(1)
	}

	admin, err := guard.NewTree("admin:user", g)
	if err != nil {
		l.Fatal(err.Error(), nil)
		os.Exit(1)
	}
	admin.Roles("admin").Logs(l)

	if err := admin.Route("/admin/:id", guard.Get("my:get", handler("admin")).Put("my:update", handler("admin"))); err != nil {
		l.Fatal(err.Error(), nil)
		os.Exit(1)
	}

	// profile keeps its own resource label under admin's scope
	if err := admin.Nest("/profiles", profile); err != nil {
		l.Fatal(err.Error(), nil)
		os.Exit(1)
	}

	r := router.New(env, middleware.LogRequest(l))
	r.OnEveryRequest(
		middleware.ForceHTTPS(env),
		middleware.CORS(warden.EnvVarOrString("BASE_URL", "")),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
	)

	api := r.Subrouter("/protect")
	api.HandleGuarded(admin.Build())

	srv := &http.Server{
		Addr:         ":3000",
		Handler:      handlers.CompressHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	l.Info("listening on :3000", nil)
	if err := srv.ListenAndServe(); err != nil {
		l.Fatal(err.Error(), nil)
		os.Exit(1)
	}
}
