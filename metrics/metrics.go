// Package metrics exposes Prometheus collectors for LLM calls and metadata
// generation outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LLMRequestDuration observes wall-clock duration of completed LLM
	// calls, including retries.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "woometa_llm_request_duration_seconds",
			Help:    "LLM request duration in seconds, including retries",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"provider", "model", "outcome"},
	)

	// LLMRequestAttempts observes how many attempts an LLM call needed.
	LLMRequestAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "woometa_llm_request_attempts",
			Help:    "Number of attempts per LLM request",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
		[]string{"provider"},
	)

	// LLMTokens counts tokens consumed, split by prompt/completion.
	LLMTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "woometa_llm_tokens_total",
			Help: "Total LLM tokens consumed",
		},
		[]string{"model", "type"},
	)

	// GenerationTotal counts metadata generation requests by outcome.
	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "woometa_generation_total",
			Help: "Metadata generation requests by outcome",
		},
		[]string{"mode", "status"},
	)

	// GenerationConfidence observes the overall confidence of successful
	// generations.
	GenerationConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "woometa_generation_confidence",
			Help:    "Overall confidence score of generated metadata",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)
)

// ObserveLLMRequest records one completed (or failed) LLM call.
func ObserveLLMRequest(provider, model, outcome string, elapsed time.Duration, attempts, promptTokens, completionTokens int) {
	LLMRequestDuration.WithLabelValues(provider, model, outcome).Observe(elapsed.Seconds())
	LLMRequestAttempts.WithLabelValues(provider).Observe(float64(attempts))
	if promptTokens > 0 {
		LLMTokens.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		LLMTokens.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
}

// Handler returns the HTTP handler serving the default registry, for
// embedding by whatever serves the API surface.
func Handler() http.Handler {
	return promhttp.Handler()
}
