package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/warden"
)

// ReportPanic encloses the env and returns an Adapter
// wrapping the handler in sentryhttp.Handle
// in order to recover and report panics.
//
// In development, panics surface instead of shipping to Sentry.
func ReportPanic(env warden.Environment) Adapter {
	return func(handler http.Handler) http.Handler {
		if env.IsDevelopment() {
			return handler
		}

		sh := sentryhttp.New(sentryhttp.Options{
			Repanic:         false,
			WaitForDelivery: true,
		})
		return sh.Handle(handler)
	}
}
