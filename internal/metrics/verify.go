package metrics

import "github.com/prometheus/client_golang/prometheus"

// Verification Prometheus metrics.
var (
	VerifyRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexord",
			Name:      "verify_runs_total",
			Help:      "Total number of completed verification runs",
		},
		[]string{"status"}, // "ok" / "failed"
	)

	VerifyRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lexord",
			Name:      "verify_run_duration_seconds",
			Help:      "Verification run duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

var verifyMetricsRegistered bool

// RegisterVerifyMetrics registers Prometheus verification metrics. Must be called once from main.
func RegisterVerifyMetrics() {
	if verifyMetricsRegistered {
		return
	}
	prometheus.MustRegister(VerifyRunsTotal)
	prometheus.MustRegister(VerifyRunDuration)
	verifyMetricsRegistered = true
}
