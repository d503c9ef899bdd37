package metrics

import (
	"time"

	"runbeam/harmony-validator/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// SchemaMetrics tracks schema loading.
//
// Metrics:
//   - harmony_validator_schema_loads_total: Loads by result
//   - harmony_validator_schema_load_duration_seconds: Load duration
//   - harmony_validator_schema_tables: Tables in the last loaded schema
//   - harmony_validator_schema_fields: Fields in the last loaded schema
type SchemaMetrics struct {
	loadsTotal   *prometheus.CounterVec
	loadDuration prometheus.Histogram
	tables       prometheus.Gauge
	fields       prometheus.Gauge
}

// NewSchemaMetrics creates and registers schema metrics with the provided registry.
func NewSchemaMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SchemaMetrics {
	sm := &SchemaMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_loads_total",
				Help:      "Total number of schema loads",
			},
			[]string{"result"},
		),

		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_load_duration_seconds",
				Help:      "Duration of schema loads in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		tables: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_tables",
				Help:      "Number of table definitions in the last loaded schema",
			},
		),

		fields: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_fields",
				Help:      "Number of field definitions in the last loaded schema",
			},
		),
	}

	registry.MustRegister(
		sm.loadsTotal,
		sm.loadDuration,
		sm.tables,
		sm.fields,
	)

	return sm
}

// RecordLoad records a schema load attempt.
func (sm *SchemaMetrics) RecordLoad(result string, duration time.Duration) {
	sm.loadsTotal.WithLabelValues(result).Inc()
	sm.loadDuration.Observe(duration.Seconds())
}

// UpdateSize sets the size gauges from the last loaded schema.
func (sm *SchemaMetrics) UpdateSize(tables, fields int) {
	sm.tables.Set(float64(tables))
	sm.fields.Set(float64(fields))
}
