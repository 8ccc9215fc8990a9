package genai

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genai_requests_total",
		Help: "Generative service calls by flow and outcome.",
	}, []string{"flow", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "genai_request_duration_seconds",
		Help:    "Latency of generative service calls.",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"flow"})
)

func observe(flow string, started time.Time, err error) {
	requestDuration.WithLabelValues(flow).Observe(time.Since(started).Seconds())
	requestsTotal.WithLabelValues(flow, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrBlocked):
		return "blocked"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}
