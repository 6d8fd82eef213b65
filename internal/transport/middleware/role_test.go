package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pokenihongo/admin-console/internal/auth"
	"github.com/pokenihongo/admin-console/internal/domain"
)

func TestRequireRole(t *testing.T) {
	t.Parallel()

	handler := RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name    string
		session *auth.Session
		want    int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"staff", &auth.Session{UserID: 2, Role: domain.RoleStaff}, http.StatusForbidden},
		{"learner", &auth.Session{UserID: 3, Role: domain.RoleLearner}, http.StatusForbidden},
		{"admin", &auth.Session{UserID: 1, Role: domain.RoleAdmin}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/screens/users", nil)
			if tt.session != nil {
				req = req.WithContext(auth.WithSession(req.Context(), *tt.session))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequireRole_EmptyAllowsAnySignedIn(t *testing.T) {
	t.Parallel()

	handler := RequireRole()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithSession(req.Context(), auth.Session{UserID: 3, Role: domain.RoleLearner}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
