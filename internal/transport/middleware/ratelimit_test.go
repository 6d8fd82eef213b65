package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pokenihongo/admin-console/internal/auth"
	"github.com/pokenihongo/admin-console/internal/domain"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(60, 10, time.Minute)
	defer rl.Stop()

	handler := rl.Mutations()(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/screens/lessons", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(60, 3, time.Minute)
	defer rl.Stop()

	handler := rl.Mutations()(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/screens/lessons/1", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/screens/lessons/1", nil)
	req.RemoteAddr = "1.2.3.4:1234"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_ReadsPassThrough(t *testing.T) {
	rl := NewRateLimiter(60, 1, time.Minute)
	defer rl.Stop()

	handler := rl.Mutations()(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/screens/lessons", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "GET %d should not be limited", i)
	}
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	rl := NewRateLimiter(60, 1, time.Minute)
	defer rl.Stop()

	handler := rl.Mutations()(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "1.1.1.1:1234"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "2.2.2.2:1234"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_KeysBySessionUser(t *testing.T) {
	rl := NewRateLimiter(60, 1, time.Minute)
	defer rl.Stop()

	handler := rl.Mutations()(okHandler())

	send := func(userID int, addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		req = req.WithContext(auth.WithSession(req.Context(), auth.Session{UserID: userID, Role: domain.RoleStaff}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send(5, "1.1.1.1:1"))
	// Same user from another address shares the bucket.
	assert.Equal(t, http.StatusTooManyRequests, send(5, "2.2.2.2:1"))
	assert.Equal(t, http.StatusOK, send(6, "1.1.1.1:1"))
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(60, 1, time.Minute)
	rl.Stop()
	rl.Stop()
}
