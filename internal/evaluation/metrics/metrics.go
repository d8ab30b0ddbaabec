package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the evaluation module.
type Metrics struct {
	// Evaluations by jurisdiction and terminal status
	Evaluations *prometheus.CounterVec

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram

	// External exchange-rate lookup latency
	RateLookupLatency prometheus.Histogram
}

// New creates a Metrics instance with all evaluation module metrics
// registered on the default registry.
func New() *Metrics {
	return &Metrics{
		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tarifa_evaluations_total",
			Help: "Total document evaluations by jurisdiction and status",
		}, []string{"jurisdiction", "status"}), // status: "ok", "error"

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tarifa_evaluate_duration_seconds",
			Help:    "Duration of full document evaluation including the rate lookup",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		RateLookupLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tarifa_rate_lookup_duration_seconds",
			Help:    "Duration of external exchange-rate lookups",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10},
		}),
	}
}

// IncrementEvaluation records one finished evaluation.
func (m *Metrics) IncrementEvaluation(jurisdiction, status string) {
	if m != nil {
		m.Evaluations.WithLabelValues(jurisdiction, status).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// ObserveRateLookupLatency records one exchange-rate lookup duration.
func (m *Metrics) ObserveRateLookupLatency(d time.Duration) {
	if m != nil {
		m.RateLookupLatency.Observe(d.Seconds())
	}
}
