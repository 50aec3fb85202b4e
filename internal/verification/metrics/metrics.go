package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification pipeline.
type Metrics struct {
	// Leaf check latencies by check name
	CheckLatency *prometheus.HistogramVec

	// Verification outcomes by rating and validity
	Outcomes *prometheus.CounterVec

	// Leaf checks that failed and were replaced by an ERROR finding
	LeafFailures *prometheus.CounterVec

	// Overall verification latency
	VerifyLatency prometheus.Histogram
}

// New registers the verification metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the verification metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CheckLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tradeverify_check_duration_seconds",
			Help:    "Duration of individual verification checks",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"check"}), // check: "document", "sanctions", "fraud", "risk"

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeverify_verification_outcomes_total",
			Help: "Total verification outcomes by credit rating and validity",
		}, []string{"rating", "valid"}),

		LeafFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeverify_check_failures_total",
			Help: "Checks that failed to evaluate and were scored conservatively",
		}, []string{"check"}),

		VerifyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradeverify_verify_duration_seconds",
			Help:    "Duration of a full verification including aggregation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

func (m *Metrics) ObserveCheckLatency(check string, d time.Duration) {
	if m != nil {
		m.CheckLatency.WithLabelValues(check).Observe(d.Seconds())
	}
}

// IncrementOutcome records a verification outcome.
func (m *Metrics) IncrementOutcome(rating string, valid bool) {
	if m == nil {
		return
	}
	label := "false"
	if valid {
		label = "true"
	}
	m.Outcomes.WithLabelValues(rating, label).Inc()
}

func (m *Metrics) IncrementLeafFailure(check string) {
	if m != nil {
		m.LeafFailures.WithLabelValues(check).Inc()
	}
}

func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}
