package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects per-operation request metrics on a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func New() *Recorder {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_interviewer_client_requests_total",
		Help: "Total number of backend requests issued by the client.",
	}, []string{"operation", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ai_interviewer_client_request_duration_seconds",
		Help:    "Latency distribution of backend requests.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"operation"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(requests, latency)

	return &Recorder{
		registry: registry,
		requests: requests,
		latency:  latency,
	}
}

// Observe records one finished request.
func (r *Recorder) Observe(operation, status string, elapsed time.Duration) {
	if r == nil {
		return
	}

	r.requests.WithLabelValues(operation, status).Inc()
	r.latency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Requests exposes the request counter.
func (r *Recorder) Requests() *prometheus.CounterVec {
	if r == nil {
		return nil
	}
	return r.requests
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteToTextfile dumps the collected metrics in the text exposition format,
// suitable for a node_exporter textfile collector.
func (r *Recorder) WriteToTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
