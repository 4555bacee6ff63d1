package scoring

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks scoring performance.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	resultsByTier    *prometheus.CounterVec
	inferenceSeconds prometheus.Histogram

	requestsServed atomic.Int64
}

// NewMetrics creates a new metrics instance. A nil registerer skips
// registration, which keeps tests independent of global collector state.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scoring_requests_total",
			Help: "Scoring requests by outcome.",
		}, []string{"status"}),
		resultsByTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scoring_results_total",
			Help: "Scoring results by risk tier.",
		}, []string{"tier"}),
		inferenceSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoring_inference_duration_seconds",
			Help:    "Time spent in feature encoding and probability estimation.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(m.requestsTotal, m.resultsByTier, m.inferenceSeconds)
	}

	return m
}

// RecordSuccess records a completed scoring request.
func (m *Metrics) RecordSuccess(duration time.Duration, tier string) {
	m.requestsServed.Add(1)
	m.requestsTotal.WithLabelValues("ok").Inc()
	m.resultsByTier.WithLabelValues(tier).Inc()
	m.inferenceSeconds.Observe(duration.Seconds())
}

// RecordFailure records a scoring request that failed inside inference.
func (m *Metrics) RecordFailure(duration time.Duration) {
	m.requestsServed.Add(1)
	m.requestsTotal.WithLabelValues("error").Inc()
	m.inferenceSeconds.Observe(duration.Seconds())
}

// RequestsServed returns the total number of scoring requests handled.
func (m *Metrics) RequestsServed() int64 {
	return m.requestsServed.Load()
}
