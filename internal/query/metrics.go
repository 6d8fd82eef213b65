package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts cache traffic per screen.
type Metrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	errors        *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

// NewMetrics registers the cache collectors with reg. A nil reg registers
// nothing, which keeps tests free of global state.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		hits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "query_cache",
			Name:      "hits_total",
			Help:      "List queries served from the cache or joined to an in-flight load.",
		}, []string{"screen"}),
		misses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "query_cache",
			Name:      "misses_total",
			Help:      "List queries that started a backend load.",
		}, []string{"screen"}),
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "query_cache",
			Name:      "load_errors_total",
			Help:      "Backend loads that failed and were evicted.",
		}, []string{"screen"}),
		invalidations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "query_cache",
			Name:      "invalidated_keys_total",
			Help:      "Cached keys removed after mutations.",
		}, []string{"screen"}),
	}
}

func (m *Metrics) hit(screen string) {
	if m != nil {
		m.hits.WithLabelValues(screen).Inc()
	}
}

func (m *Metrics) miss(screen string) {
	if m != nil {
		m.misses.WithLabelValues(screen).Inc()
	}
}

func (m *Metrics) loadError(screen string) {
	if m != nil {
		m.errors.WithLabelValues(screen).Inc()
	}
}

func (m *Metrics) invalidated(screen string, n int) {
	if m != nil && n > 0 {
		m.invalidations.WithLabelValues(screen).Add(float64(n))
	}
}
