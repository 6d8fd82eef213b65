package rest

import (
	"context"
	"net/http"
	"time"
)

const defaultHealthTimeout = 3 * time.Second

// pinger checks that the PokeNihongo backend answers.
type pinger interface {
	Ping(ctx context.Context) error
}

// pageCache reports the size of the list page cache.
type pageCache interface {
	CachedPages() int
}

// HealthHandler serves the liveness, readiness and health endpoints. Only
// the backend decides readiness; the page cache is reported for operators.
type HealthHandler struct {
	backend pinger
	cache   pageCache
	version string
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. cache may be nil.
func NewHealthHandler(backend pinger, cache pageCache, version string) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		cache:   cache,
		version: version,
		timeout: defaultHealthTimeout,
		now:     time.Now,
	}
}

// HealthResponse is the JSON body of every health endpoint.
type HealthResponse struct {
	Status     string               `json:"status"`
	Version    string               `json:"version,omitempty"`
	Components map[string]Component `json:"components,omitempty"`
	Timestamp  time.Time            `json:"timestamp"`
}

// Component is the state of one dependency.
type Component struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
	Pages   *int   `json:"pages,omitempty"`
}

// Live always answers 200 while the process serves requests.
// GET /live
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: h.now()})
}

// Ready answers 503 while the backend cannot be reached, so that a load
// balancer stops routing console traffic that would only produce 502s.
// GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	backend := h.checkBackend(r.Context())
	writeJSON(w, httpStatus(backend), HealthResponse{
		Status:     backend.Status,
		Components: map[string]Component{componentBackend: backend},
		Timestamp:  h.now(),
	})
}

// Health reports every component with the build version.
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	backend := h.checkBackend(r.Context())
	components := map[string]Component{componentBackend: backend}
	if h.cache != nil {
		pages := h.cache.CachedPages()
		components[componentCache] = Component{Status: statusOK, Pages: &pages}
	}

	writeJSON(w, httpStatus(backend), HealthResponse{
		Status:     backend.Status,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}

const (
	statusOK   = "ok"
	statusDown = "down"

	componentBackend = "backend"
	componentCache   = "cache"
)

func (h *HealthHandler) checkBackend(ctx context.Context) Component {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := h.backend.Ping(ctx)
	latency := time.Since(start).Round(time.Microsecond).String()
	if err != nil {
		return Component{Status: statusDown, Latency: latency, Error: err.Error()}
	}
	return Component{Status: statusOK, Latency: latency}
}

func httpStatus(c Component) int {
	if c.Status != statusOK {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
