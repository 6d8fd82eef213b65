package auth

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/pokenihongo/admin-console/internal/domain"
)

// Session is the decoded identity of the console user.
type Session struct {
	UserID    int
	Username  string
	Role      domain.Role
	ExpiresAt time.Time
}

// IsZero reports whether s is the anonymous session.
func (s Session) IsZero() bool { return s.UserID == 0 }

// Authorize checks role against the roles allowed on a screen. An empty
// allow list admits any valid role.
func Authorize(role domain.Role, allowed []domain.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: no role", domain.ErrUnauthorized)
	}
	if len(allowed) == 0 || slices.Contains(allowed, role) {
		return nil
	}
	return fmt.Errorf("%w: role %s", domain.ErrForbidden, role)
}

type ctxKey struct{}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// SessionFromCtx extracts the session. ok is false for anonymous requests.
func SessionFromCtx(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || s.IsZero() {
		return Session{}, false
	}
	return s, true
}
