package middleware

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/warden"
)

// Guard gates the handler behind g.Check for the given resource and action.
//
// The check runs exactly once per request, before the handler,
// and receives the request's context so cancellation of the request
// cancels an in-flight check.
// A nil check result passes the request to the handler.
// A non-nil result short-circuits the request:
// the handler never runs and the response comes from the check result alone.
//
// A nil guard fails closed; an unguarded route must opt out by not using Guard,
// not by passing nil.
func Guard(g warden.Guard, resource, action string) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g == nil {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			if err := g.Check(r.Context(), resource, action); err != nil {
				refuse(w, r, err)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}

// GuardRoles gates the handler behind g.CheckRoles for the given roles.
//
// If roles is empty or g does not implement [warden.RoleGuard],
// GuardRoles returns NoopAdapter and this middleware does nothing.
func GuardRoles(g warden.Guard, roles ...string) Adapter {
	rg, ok := g.(warden.RoleGuard)
	if !ok || len(roles) == 0 {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := rg.CheckRoles(r.Context(), roles); err != nil {
				refuse(w, r, err)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}

// refuse writes the response for a failed check.
//
// A [*warden.Rejection] writes itself.
// Other errors - including a guard's own infrastructure failures -
// collapse into a plain 403; warden passes no detail about them to the client.
func refuse(w http.ResponseWriter, r *http.Request, err error) {
	var rj *warden.Rejection
	if errors.As(err, &rj) {
		rj.ServeHTTP(w, r)
		return
	}

	if h, ok := err.(http.Handler); ok {
		h.ServeHTTP(w, r)
		return
	}

	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
