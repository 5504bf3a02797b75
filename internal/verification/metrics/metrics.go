package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	// Per-source probe latencies
	ProbeLatency *prometheus.HistogramVec

	// Search outcomes by entry point and terminal status
	SearchOutcome *prometheus.CounterVec

	// Overall multi-source search latency
	SearchLatency prometheus.Histogram
}

// New creates a Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		ProbeLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idv_verification_probe_duration_seconds",
			Help:    "Duration of single source probes by source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"source"}),

		SearchOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idv_verification_outcomes_total",
			Help: "Total verification outcomes by entry point and status",
		}, []string{"path", "status"}), // path: "multi_source" or "single"

		SearchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "idv_verification_search_duration_seconds",
			Help:    "Duration of full multi-source searches",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveProbeLatency records the duration of one source probe.
func (m *Metrics) ObserveProbeLatency(source string, d time.Duration) {
	if m != nil {
		m.ProbeLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records a terminal search outcome.
func (m *Metrics) IncrementOutcome(path, status string) {
	if m != nil {
		m.SearchOutcome.WithLabelValues(path, status).Inc()
	}
}

// ObserveSearchLatency records the total multi-source search duration.
func (m *Metrics) ObserveSearchLatency(d time.Duration) {
	if m != nil {
		m.SearchLatency.Observe(d.Seconds())
	}
}
