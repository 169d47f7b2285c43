package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pawshop/storefront/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	cases := []struct {
		name     string
		role     any
		allowed  []domain.Role
		wantCode int
		wantNext bool
	}{
		{"admin on admin route", "admin", []domain.Role{domain.RoleAdmin}, http.StatusOK, true},
		{"customer on admin route", "user", []domain.Role{domain.RoleAdmin}, http.StatusForbidden, false},
		{"customer on shared route", "user", []domain.Role{domain.RoleAdmin, domain.RoleUser}, http.StatusOK, true},
		{"no role set", nil, []domain.Role{domain.RoleAdmin}, http.StatusUnauthorized, false},
		{"empty role", "", []domain.Role{domain.RoleUser}, http.StatusUnauthorized, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/pets", nil), rec)
			if tc.role != nil {
				c.Set(KeyRole, tc.role)
			}

			called := false
			handler := RBAC(tc.allowed...)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if called != tc.wantNext {
				t.Fatalf("next called = %v, want %v", called, tc.wantNext)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
		})
	}
}
