package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/warden"
	"github.com/xy-planning-network/warden/http/middleware"
)

func TestChain(t *testing.T) {
	// Arrange
	var order []string
	tag := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	middleware.Chain(teapotHandler(), tag("first"), tag("second")).ServeHTTP(w, r)

	// Assert
	require.Equal(t, []string{"first", "second"}, order)
	require.Equal(t, http.StatusTeapot, w.Code)
}

func TestRequestID(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	actual := middleware.RequestID()

	// Assert
	actual(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		val, ok := rx.Context().Value(warden.RequestIDKey).(string)
		require.True(t, ok)
		require.NotZero(t, val)
	})).ServeHTTP(w, r)
}

func TestInjectIPAddress(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("X-Forwarded-For", "93.184.216.34")

	// Act + Assert
	middleware.InjectIPAddress()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		val, ok := rx.Context().Value(warden.IpAddrKey).(string)
		require.True(t, ok)
		require.Equal(t, "93.184.216.34", val)
	})).ServeHTTP(w, r)
}

func TestGetIPAddress(t *testing.T) {
	for _, tc := range []struct {
		name     string
		header   http.Header
		expected string
	}{
		{"None", http.Header{}, "0.0.0.0"},
		{"Public", http.Header{"X-Forwarded-For": []string{"93.184.216.34"}}, "93.184.216.34"},
		{"Private-Skipped", http.Header{"X-Forwarded-For": []string{"93.184.216.34, 10.0.0.1"}}, "93.184.216.34"},
		{"Real-Ip", http.Header{"X-Real-Ip": []string{"93.184.216.34"}}, "93.184.216.34"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, middleware.GetIPAddress(tc.header))
		})
	}
}

func TestRateLimit(t *testing.T) {
	// Arrange
	vs := middleware.NewVisitors()
	handler := middleware.RateLimit(vs)(teapotHandler())

	// Act + Assert
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		handler.ServeHTTP(w, r)
		require.Equal(t, http.StatusTeapot, w.Code)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
