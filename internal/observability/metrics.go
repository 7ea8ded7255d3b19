package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	utterancesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "murmur_utterances_total",
		Help: "Total number of push-to-talk utterances started",
	})

	utteranceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "murmur_utterance_duration_seconds",
		Help:    "Duration from key press to key release in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	recognitionResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_recognition_results_total",
		Help: "Recognition cycles by outcome",
	}, []string{"status"})

	partialTranscripts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_partial_transcripts_total",
		Help: "Partial transcript updates by language",
	}, []string{"language"})

	rewriteResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_rewrite_results_total",
		Help: "Rewrite attempts by outcome",
	}, []string{"status"})

	outputResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_output_results_total",
		Help: "Text deliveries by outcome",
	}, []string{"status"})

	rejectedTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "murmur_rejected_transitions_total",
		Help: "State machine calls rejected by their precondition",
	}, []string{"entity", "operation"})
)

// ServeMetrics exposes the Prometheus endpoint on addr. It blocks, so
// callers run it in a goroutine.
func ServeMetrics(addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info().Str("addr", addr).Msg("metrics server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server failed")
	}
}
