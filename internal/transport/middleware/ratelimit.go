package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pokenihongo/admin-console/internal/auth"
)

// RateLimiter limits mutating requests per client. Clients are keyed by
// session user when signed in, else by remote IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	stop    chan struct{}
	once    sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per client
// with the given burst, plus background cleanup of idle clients.
// Call Stop() on shutdown.
func NewRateLimiter(perMinute, burst int, cleanupInterval time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		stop:    make(chan struct{}),
	}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Mutations returns middleware that limits POST, PUT, PATCH and DELETE.
// Reads are served from the query cache and pass through.
func (rl *RateLimiter) Mutations() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			lim := rl.limiter(clientKey(r))
			if !lim.Allow() {
				retryAfter := time.Duration(float64(time.Second) / float64(rl.limit))
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

func clientKey(r *http.Request) string {
	if s, ok := auth.SessionFromCtx(r.Context()); ok {
		return "user:" + strconv.Itoa(s.UserID)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for key, c := range rl.clients {
				if now.Sub(c.lastSeen) > 10*time.Minute {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}
