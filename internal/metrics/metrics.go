// Package metrics exposes Prometheus instrumentation for exercise
// evaluations, plus an optional HTTP endpoint serving the standard
// /metrics surface.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Evaluation outcomes used as the label value on the evaluations counter.
const (
	OutcomePassed  = "passed"
	OutcomeFailed  = "failed"
	OutcomeTimeout = "timeout"
)

// Evaluations instruments exercise evaluation outcomes and latency.
type Evaluations struct {
	total    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewEvaluations creates and registers the evaluation collectors.
//
// Parameters:
//   - reg: The registry the collectors are registered on.
//
// Returns:
//   - *Evaluations: The registered instrumentation handle.
func NewEvaluations(reg prometheus.Registerer) *Evaluations {
	e := &Evaluations{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pygym",
			Name:      "evaluations_total",
			Help:      "Exercise evaluations by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pygym",
			Name:      "evaluation_duration_seconds",
			Help:      "Wall-clock duration of individual exercise evaluations.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
	reg.MustRegister(e.total, e.duration)
	return e
}

// Observe records one evaluation outcome and its duration.
// A nil receiver is a no-op so callers can run without instrumentation.
func (e *Evaluations) Observe(outcome string, d time.Duration) {
	if e == nil {
		return
	}
	e.total.WithLabelValues(outcome).Inc()
	e.duration.Observe(d.Seconds())
}

// Handler returns the HTTP handler serving the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve starts a metrics HTTP server on addr in a background goroutine.
// Errors after startup are reported through errFn; Serve itself never blocks.
func Serve(addr string, reg *prometheus.Registry, errFn func(error)) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && errFn != nil {
			errFn(err)
		}
	}()
}
