// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/reviewlens/internal/model"
)

const namespace = "reviewlens"

// Metrics tracks prediction outcomes
type Metrics struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	errors      prometheus.Counter
	duration    prometheus.Histogram
}

// New creates collectors on a private registry, with Go runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Reviews classified, by label.",
		}, []string{"label"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Prediction requests that failed in the classifier.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "predict_duration_seconds",
			Help:      "Time spent classifying a review.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.predictions, m.errors, m.duration)

	return m
}

// ObservePrediction records a successful classification
func (m *Metrics) ObservePrediction(label model.Label, elapsed time.Duration) {
	m.predictions.WithLabelValues(label.String()).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObserveError records a failed classification
func (m *Metrics) ObserveError(elapsed time.Duration) {
	m.errors.Inc()
	m.duration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
