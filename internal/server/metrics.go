package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-daycalendar/internal/config"
	"github.com/tartampluch/go-daycalendar/internal/engine"
)

// Metrics exports calendar build telemetry to Prometheus.
type Metrics struct {
	registry      *prometheus.Registry
	builds        *prometheus.CounterVec
	buildErrors   *prometheus.CounterVec
	entriesPlaced *prometheus.CounterVec
	buildDuration prometheus.Histogram
}

// NewMetrics registers the build metrics on a dedicated registry.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Name:      "builds_total",
			Help:      "Calendar builds attempted, per contact source.",
		}, []string{config.MetricLabelSource}),
		buildErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Name:      "build_errors_total",
			Help:      "Calendar builds that failed, per contact source.",
		}, []string{config.MetricLabelSource}),
		entriesPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Name:      "entries_placed_total",
			Help:      "Calendar entries written, per kind.",
		}, []string{config.MetricLabelKind}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.MetricsNamespace,
			Name:      "build_duration_seconds",
			Help:      "Latency of a calendar build including the contact fetch.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	collectors := []prometheus.Collector{
		m.builds, m.buildErrors, m.entriesPlaced, m.buildDuration,
		collectors.NewGoCollector(),
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", config.ErrMetricsRegister, err)
		}
	}
	return m, nil
}

// RecordBuild tracks one build attempt. A nil receiver records nothing.
func (m *Metrics) RecordBuild(source string, duration time.Duration, stats engine.Stats, err error) {
	if m == nil {
		return
	}
	m.builds.WithLabelValues(source).Inc()
	m.buildDuration.Observe(duration.Seconds())
	if err != nil {
		m.buildErrors.WithLabelValues(source).Inc()
		return
	}
	m.entriesPlaced.WithLabelValues(config.MetricKindAnniv).Add(float64(stats.Anniversaries))
	m.entriesPlaced.WithLabelValues(config.MetricKindMilestone).Add(float64(stats.Milestones))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
