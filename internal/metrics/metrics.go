// Package metrics exposes Prometheus counters for the chat pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intake"

// Recorder is safe for concurrent use. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	completions *prometheus.CounterVec
	retries     *prometheus.CounterVec
	replies     *prometheus.CounterVec
	retrieval   *prometheus.CounterVec
	latency     prometheus.Histogram
}

// New creates a Recorder on its own registry, together with the Go runtime
// and process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_calls_total",
			Help:      "Calls to the completion provider by HTTP status (0 for transport failures).",
		}, []string{"status"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_retries_total",
			Help:      "Completion retries by failure class.",
		}, []string{"class"}),
		replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_replies_total",
			Help:      "Chat replies by outcome.",
		}, []string{"outcome"}),
		retrieval: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_total",
			Help:      "Retrieval attempts by mode and result.",
		}, []string{"mode", "result"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Latency of single completion calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
	}
	reg.MustRegister(
		r.completions, r.retries, r.replies, r.retrieval, r.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the registry the recorder's collectors are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Completion records one provider call. status is 0 when no response was received.
func (r *Recorder) Completion(status int, d time.Duration) {
	if r == nil {
		return
	}
	r.completions.WithLabelValues(statusLabel(status)).Inc()
	r.latency.Observe(d.Seconds())
}

// Retry records a retry of the given class (transient, token_param, nudge).
func (r *Recorder) Retry(class string) {
	if r == nil {
		return
	}
	r.retries.WithLabelValues(class).Inc()
}

// Reply records the outcome of a chat request (ok, fallback, not_configured, invalid, upstream_error).
func (r *Recorder) Reply(outcome string) {
	if r == nil {
		return
	}
	r.replies.WithLabelValues(outcome).Inc()
}

// Retrieval records a retrieval attempt.
func (r *Recorder) Retrieval(mode, result string) {
	if r == nil {
		return
	}
	r.retrieval.WithLabelValues(mode, result).Inc()
}

func statusLabel(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
