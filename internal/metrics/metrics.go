// Package metrics exposes the service's Prometheus registry: Go runtime and
// process collectors plus collection-run and HTTP request instruments.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// Metrics owns a private registry so tests can instantiate it without
// colliding with the default global registry. The collection instruments are
// mirrored onto an OpenTelemetry meter so an OTLP pipeline sees them too.
type Metrics struct {
	registry *prometheus.Registry

	collectionDuration *prometheus.HistogramVec
	collectionRuns     *prometheus.CounterVec
	collectionRecords  *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	otelRuns     otelmetric.Int64Counter
	otelRecords  otelmetric.Int64Counter
	otelDuration otelmetric.Float64Histogram
}

// NewMetrics creates a Metrics with no OTLP export; the application wires
// NewExportedMetrics instead.
func NewMetrics() *Metrics {
	return NewExportedMetrics(noop.NewMeterProvider())
}

// NewExportedMetrics creates the registry, registers every Prometheus
// instrument and mirrors the collection instruments on mp.
func NewExportedMetrics(mp otelmetric.MeterProvider) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		collectionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tidecast_collection_duration_seconds",
			Help:    "Duration of collection runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job", "status"}),
		collectionRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tidecast_collection_runs_total",
			Help: "Total collection runs by job and status.",
		}, []string{"job", "status"}),
		collectionRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tidecast_collection_records_total",
			Help: "Total rows written by collection runs.",
		}, []string{"job"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tidecast_http_requests_total",
			Help: "Total HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tidecast_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registry.MustRegister(m.collectionDuration)
	registry.MustRegister(m.collectionRuns)
	registry.MustRegister(m.collectionRecords)
	registry.MustRegister(m.httpRequests)
	registry.MustRegister(m.httpDuration)

	m.bindMeter(mp)
	return m
}

func (m *Metrics) bindMeter(mp otelmetric.MeterProvider) {
	meter := mp.Meter("tidecast")
	var err error
	if m.otelRuns, err = meter.Int64Counter("tidecast.collection.runs",
		otelmetric.WithDescription("Total collection runs by job and status.")); err != nil {
		logger.Warnf("failed to create collection runs instrument: %v", err)
	}
	if m.otelRecords, err = meter.Int64Counter("tidecast.collection.records",
		otelmetric.WithDescription("Total rows written by collection runs.")); err != nil {
		logger.Warnf("failed to create collection records instrument: %v", err)
	}
	if m.otelDuration, err = meter.Float64Histogram("tidecast.collection.duration",
		otelmetric.WithDescription("Duration of collection runs in seconds."),
		otelmetric.WithUnit("s")); err != nil {
		logger.Warnf("failed to create collection duration instrument: %v", err)
	}
}

// Registry returns the private Prometheus registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCollection records one finished collection run.
func (m *Metrics) ObserveCollection(job, status string, records int64, duration time.Duration) {
	m.collectionRuns.WithLabelValues(job, status).Inc()
	m.collectionDuration.WithLabelValues(job, status).Observe(duration.Seconds())
	if records > 0 {
		m.collectionRecords.WithLabelValues(job).Add(float64(records))
	}

	ctx := context.Background()
	labels := otelmetric.WithAttributes(
		attribute.String("job", job),
		attribute.String("status", status),
	)
	if m.otelRuns != nil {
		m.otelRuns.Add(ctx, 1, labels)
	}
	if m.otelDuration != nil {
		m.otelDuration.Record(ctx, duration.Seconds(), labels)
	}
	if m.otelRecords != nil && records > 0 {
		m.otelRecords.Add(ctx, records, otelmetric.WithAttributes(attribute.String("job", job)))
	}
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(route, method string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}
