package guard

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/warden"
)

// A binding ties one HTTP method on a path to an action label and its handler.
type binding struct {
	method  string
	action  string
	handler http.Handler
}

// An Actions set associates one or more HTTP methods on a single path
// with named actions, so one path can expose several methods
// under different actions:
//
//	guard.Get("my:get", getHandler).Put("my:update", updateHandler)
//
// Bindings keep their declaration order.
// A misuse - a duplicate method, a missing action or handler - is recorded
// and surfaced by [Tree.Route]; the first error wins.
type Actions struct {
	bindings []binding
	err      error
}

// Delete starts an Actions set binding DELETE to the action and handler.
func Delete(action string, handler http.Handler) *Actions {
	return new(Actions).on(http.MethodDelete, action, handler)
}

// Get starts an Actions set binding GET to the action and handler.
func Get(action string, handler http.Handler) *Actions {
	return new(Actions).on(http.MethodGet, action, handler)
}

// Head starts an Actions set binding HEAD to the action and handler.
func Head(action string, handler http.Handler) *Actions {
	return new(Actions).on(http.MethodHead, action, handler)
}

// Options starts an Actions set binding OPTIONS to the action and handler.
func Options(action string, handler http.Handler) *Actions {
	return new(Actions).on(http.MethodOptions, action, handler)
}

// Patch starts an Actions set binding PATCH to the action and handler.
func Patch(action string, handler http.Handler) *Actions {
	return new(Actions).on(http.MethodPatch, action, handler)
}

// Post starts an Actions set binding POST to the action and handler.
func Post(action string, handler http.Handler) *Actions {
	return new(Actions).on(http.MethodPost, action, handler)
}

// Put starts an Actions set binding PUT to the action and handler.
func Put(action string, handler http.Handler) *Actions {
	return new(Actions).on(http.MethodPut, action, handler)
}

// Delete chains a DELETE binding onto the set.
func (a *Actions) Delete(action string, handler http.Handler) *Actions {
	return a.on(http.MethodDelete, action, handler)
}

// Get chains a GET binding onto the set.
func (a *Actions) Get(action string, handler http.Handler) *Actions {
	return a.on(http.MethodGet, action, handler)
}

// Head chains a HEAD binding onto the set.
func (a *Actions) Head(action string, handler http.Handler) *Actions {
	return a.on(http.MethodHead, action, handler)
}

// Options chains an OPTIONS binding onto the set.
func (a *Actions) Options(action string, handler http.Handler) *Actions {
	return a.on(http.MethodOptions, action, handler)
}

// Patch chains a PATCH binding onto the set.
func (a *Actions) Patch(action string, handler http.Handler) *Actions {
	return a.on(http.MethodPatch, action, handler)
}

// Post chains a POST binding onto the set.
func (a *Actions) Post(action string, handler http.Handler) *Actions {
	return a.on(http.MethodPost, action, handler)
}

// Put chains a PUT binding onto the set.
func (a *Actions) Put(action string, handler http.Handler) *Actions {
	return a.on(http.MethodPut, action, handler)
}

// Err reports the first misuse recorded while building the set, if any.
func (a *Actions) Err() error { return a.err }

func (a *Actions) on(method, action string, handler http.Handler) *Actions {
	if a.has(method) {
		if a.err == nil {
			a.err = fmt.Errorf("%w: %s", ErrDuplicateMethod, method)
		}
		return a
	}

	if action == "" {
		if a.err == nil {
			a.err = fmt.Errorf("%w: action required for %s", warden.ErrNotValid, method)
		}
		return a
	}

	if handler == nil {
		if a.err == nil {
			a.err = fmt.Errorf("%w: handler required for %s", warden.ErrNotValid, method)
		}
		return a
	}

	a.bindings = append(a.bindings, binding{method: method, action: action, handler: handler})
	return a
}

func (a *Actions) has(method string) bool {
	for _, b := range a.bindings {
		if b.method == method {
			return true
		}
	}

	return false
}
