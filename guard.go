// Package warden holds the contracts shared by every part of a warden app:
// the guard check invoked before a protected handler runs,
// the rejection a guard answers with,
// and the context keys warden middlewares stash values under.
package warden

import (
	"context"
	"fmt"
	"net/http"
)

// A Guard decides whether a request may reach the handler
// for the resource and action labels a route was declared with.
//
// A nil return proceeds to the handler.
// Any non-nil return short-circuits the request;
// return a [*Rejection] to control the response written.
//
// One Guard instance is shared by reference across a whole route tree
// and every request in flight, so implementations must be safe
// for concurrent use.
type Guard interface {
	Check(ctx context.Context, resource, action string) error
}

// A RoleGuard additionally vets the role list a route tree was declared with.
// The role check runs before the resource/action check.
//
// Implementing RoleGuard is optional; trees without roles
// and guards without the method skip it.
type RoleGuard interface {
	CheckRoles(ctx context.Context, roles []string) error
}

// A Rejection is a guard's denial of a request.
//
// Rejection implements error, so a Guard returns it from Check,
// and http.Handler, so warden can write it as the response verbatim.
type Rejection struct {
	// Code is the HTTP status to write. Zero means 403.
	Code int

	// Msg is the response body. Empty means the status text for Code.
	Msg string
}

// NewRejection constructs a *Rejection from a status code and body.
func NewRejection(code int, msg string) *Rejection {
	return &Rejection{Code: code, Msg: msg}
}

// Error implements the error interface.
func (rj *Rejection) Error() string {
	return fmt.Sprintf("rejected (%d): %s", rj.status(), rj.body())
}

// ServeHTTP writes the Rejection as the HTTP response.
func (rj *Rejection) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, rj.body(), rj.status())
}

func (rj *Rejection) status() int {
	if rj.Code == 0 {
		return http.StatusForbidden
	}

	return rj.Code
}

func (rj *Rejection) body() string {
	if rj.Msg == "" {
		return http.StatusText(rj.status())
	}

	return rj.Msg
}
