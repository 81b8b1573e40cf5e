// Package metrics exposes Prometheus metrics for the HTTP surface and the
// row generator.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rows",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rows",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Generator metrics
	Generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rows",
		Subsystem: "generator",
		Name:      "runs_total",
		Help:      "Total row network generations by outcome",
	}, []string{"outcome"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rows",
		Subsystem: "generator",
		Name:      "duration_seconds",
		Help:      "Duration of one row network generation",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})

	RowsGenerated = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rows",
		Subsystem: "generator",
		Name:      "rows",
		Help:      "Number of row segments per generation",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	TurnWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rows",
		Subsystem: "generator",
		Name:      "turn_warnings_total",
		Help:      "Total turn attachments skipped because of an unusable template",
	})
)

// Generation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// ObserveGeneration records one generation.
func ObserveGeneration(outcome string, d time.Duration, rowCount, warnings int) {
	Generations.WithLabelValues(outcome).Inc()
	GenerationDuration.Observe(d.Seconds())
	if outcome == OutcomeOK {
		RowsGenerated.Observe(float64(rowCount))
	}
	TurnWarnings.Add(float64(warnings))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request metrics. The path label is the registered
// pattern when the mux provides one.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the Prometheus /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
