package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream provider and summary Prometheus metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "explorer",
			Name:      "provider_requests_total",
			Help:      "Total number of upstream provider requests",
		},
		[]string{"provider", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "explorer",
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 45},
		},
		[]string{"provider"},
	)

	ProviderErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "explorer",
			Name:      "provider_errors_total",
			Help:      "Total upstream provider errors",
		},
		[]string{"provider", "error_type"},
	)

	CompletionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "explorer",
			Name:      "completion_tokens_total",
			Help:      "Total language model tokens consumed",
		},
		[]string{"model", "type"},
	)

	SummariesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "explorer",
			Name:      "summaries_total",
			Help:      "Summaries by category and outcome",
		},
		[]string{"category", "outcome"},
	)
)

var registerOnce sync.Once

// RegisterProviderMetrics registers provider and summary metrics. Safe to call more than once.
func RegisterProviderMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ProviderRequestsTotal)
		prometheus.MustRegister(ProviderRequestDuration)
		prometheus.MustRegister(ProviderErrorsTotal)
		prometheus.MustRegister(CompletionTokensTotal)
		prometheus.MustRegister(SummariesTotal)
	})
}
