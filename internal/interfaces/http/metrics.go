package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog/log"
)

// MetricsRegistry holds all Prometheus metrics for the dashboard.
type MetricsRegistry struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec

	// Stats cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Refresh pipeline metrics
	RefreshDuration prometheus.Histogram
	RecordsIngested *prometheus.CounterVec
	RecordsDropped  *prometheus.CounterVec
	RefreshErrors   *prometheus.CounterVec

	// Snapshot state
	SnapshotAge prometheus.Gauge

	// WebSocket metrics
	WSClients prometheus.Gauge
}

// NewMetricsRegistry creates a metrics registry with all dashboard
// metrics registered on a private Prometheus registry.
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		registry: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carbonintel_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"route", "method"},
		),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbonintel_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),

		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "carbonintel_stats_cache_hits_total",
				Help: "Total number of stats cache hits",
			},
		),

		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "carbonintel_stats_cache_misses_total",
				Help: "Total number of stats cache misses",
			},
		),

		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "carbonintel_refresh_duration_seconds",
				Help:    "Duration of full data refresh passes in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),

		RecordsIngested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbonintel_records_ingested_total",
				Help: "Total number of records accepted into the snapshot by kind",
			},
			[]string{"kind"},
		),

		RecordsDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbonintel_records_dropped_total",
				Help: "Total number of records dropped during normalization by kind",
			},
			[]string{"kind"},
		),

		RefreshErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbonintel_refresh_errors_total",
				Help: "Total number of refresh pipeline errors by stage",
			},
			[]string{"stage"},
		),

		SnapshotAge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "carbonintel_snapshot_age_seconds",
				Help: "Seconds since the in-memory snapshot was last loaded",
			},
		),

		WSClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "carbonintel_ws_clients",
				Help: "Number of connected alert stream clients",
			},
		),
	}

	m.registry.MustRegister(
		m.RequestDuration,
		m.RequestsTotal,
		m.CacheHits,
		m.CacheMisses,
		m.RefreshDuration,
		m.RecordsIngested,
		m.RecordsDropped,
		m.RefreshErrors,
		m.SnapshotAge,
		m.WSClients,
	)

	return m
}

// RecordRequest records one completed HTTP request.
func (m *MetricsRegistry) RecordRequest(route, method, status string, duration time.Duration) {
	m.RequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
	m.RequestsTotal.WithLabelValues(route, status).Inc()
}

// RecordRefresh records the outcome of one refresh pass.
func (m *MetricsRegistry) RecordRefresh(commitments, funding, dropped int, duration time.Duration) {
	m.RefreshDuration.Observe(duration.Seconds())
	m.RecordsIngested.WithLabelValues("commitment").Add(float64(commitments))
	m.RecordsIngested.WithLabelValues("funding").Add(float64(funding))
	m.RecordsDropped.WithLabelValues("all").Add(float64(dropped))
	m.SnapshotAge.Set(0)

	log.Debug().
		Int("commitments", commitments).
		Int("funding", funding).
		Int("dropped", dropped).
		Dur("duration", duration).
		Msg("Refresh metrics recorded")
}

// RecordRefreshError records a refresh failure at a named stage.
func (m *MetricsRegistry) RecordRefreshError(stage string) {
	m.RefreshErrors.WithLabelValues(stage).Inc()
	log.Warn().Str("stage", stage).Msg("Refresh error recorded")
}

// CounterValue reads the current value of a counter vec child. Used
// by health reporting and tests.
func CounterValue(vec *prometheus.CounterVec, labels ...string) float64 {
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		return 0
	}
	return metric.GetCounter().GetValue()
}

// MetricsHandler returns the Prometheus scrape handler for this
// registry.
func (m *MetricsRegistry) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
