package middleware_test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
)

func teapotHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

// mockGuard doubles a warden.Guard.
type mockGuard struct {
	mock.Mock
}

func (m *mockGuard) Check(ctx context.Context, resource, action string) error {
	args := m.Called(ctx, resource, action)
	return args.Error(0)
}

// mockRoleGuard doubles a guard that also implements warden.RoleGuard.
type mockRoleGuard struct {
	mockGuard
}

func (m *mockRoleGuard) CheckRoles(ctx context.Context, roles []string) error {
	args := m.Called(ctx, roles)
	return args.Error(0)
}
