package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics records request counts and latencies.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewHTTPMetrics registers the HTTP collectors with reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	f := promauto.With(reg)
	return &HTTPMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests received.",
		}, []string{"method", "route", "status"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "console",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "console",
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
	}
}

// Route instruments one route. route is the registered pattern rather than
// the request path so per-id paths share a label.
func (m *HTTPMetrics) Route(route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			m.inFlight.Inc()
			defer m.inFlight.Dec()

			next.ServeHTTP(sw, r)

			status := strconv.Itoa(sw.status)
			m.requests.WithLabelValues(r.Method, route, status).Inc()
			m.latency.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		})
	}
}
