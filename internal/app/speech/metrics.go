package speech

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Metrics holds the Prometheus collectors for recognition calls.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	bytes    prometheus.Histogram
}

// NewMetrics creates and registers the recognition collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "speech",
			Name:      "recognition_requests_total",
			Help:      "Recognition calls by backend and outcome.",
		}, []string{"backend", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "speech",
			Name:      "recognition_duration_seconds",
			Help:      "Latency of recognition calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"backend"}),
		bytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "speech",
			Name:      "recognition_audio_bytes",
			Help:      "Size of audio payloads sent for recognition.",
			Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 8),
		}),
	}
	reg.MustRegister(m.requests, m.latency, m.bytes)
	return m
}

// Instrument wraps r so every call is counted and timed under backend.
func Instrument(r Recognizer, backend string, m *Metrics) Recognizer {
	return RecognizerFunc(func(ctx context.Context, audio []byte, cfg Config) ([]Segment, error) {
		start := time.Now()
		segments, err := r.Recognize(ctx, audio, cfg)

		m.latency.WithLabelValues(backend).Observe(time.Since(start).Seconds())
		m.bytes.Observe(float64(len(audio)))

		switch {
		case err != nil:
			m.requests.WithLabelValues(backend, outcomeError).Inc()
		case len(segments) == 0:
			m.requests.WithLabelValues(backend, outcomeEmpty).Inc()
		default:
			m.requests.WithLabelValues(backend, outcomeSuccess).Inc()
		}
		return segments, err
	})
}
