package middleware

import (
	"net/http"
	"strings"

	"github.com/pokenihongo/admin-console/internal/auth"
	"github.com/pokenihongo/admin-console/pkg/ctxutil"
)

type sessionDecoder interface {
	Decode(token string) (auth.Session, error)
}

// Auth decodes the bearer token into a session. Requests without a token
// pass through anonymously; a token that does not decode is rejected. The
// raw token is kept in the context so backend calls run as the caller.
func Auth(decoder sessionDecoder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			session, err := decoder.Decode(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			annotate(r.Context(), session)
			ctx := auth.WithSession(r.Context(), session)
			ctx = ctxutil.WithBearerToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
