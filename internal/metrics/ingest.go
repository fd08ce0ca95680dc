package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingest Prometheus metrics.
var (
	IngestDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexord",
			Name:      "ingest_documents_total",
			Help:      "Total number of documents processed by bulk ingest",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var ingestMetricsRegistered bool

// RegisterIngestMetrics registers Prometheus ingest metrics. Must be called once from main.
func RegisterIngestMetrics() {
	if ingestMetricsRegistered {
		return
	}
	prometheus.MustRegister(IngestDocumentsTotal)
	ingestMetricsRegistered = true
}
