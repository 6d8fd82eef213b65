package middleware

import (
	"errors"
	"net/http"

	"github.com/pokenihongo/admin-console/internal/auth"
	"github.com/pokenihongo/admin-console/internal/domain"
)

// RequireRole admits sessions whose role is in roles. Anonymous requests
// get 401, other roles 403.
func RequireRole(roles ...domain.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, _ := auth.SessionFromCtx(r.Context())
			if err := auth.Authorize(s.Role, roles); err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
