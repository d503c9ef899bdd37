package metrics

import (
	"time"

	"runbeam/harmony-validator/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RuleNone is the rule label of runs that did not fail on a rule.
const RuleNone = "none"

// Collector owns every Prometheus metric exported by harmony-validator.
// A disabled collector accepts calls and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	validationMetrics *ValidationMetrics
	schemaMetrics     *SchemaMetrics
	watchMetrics      *WatchMetrics
}

// NewCollector creates a collector registered on registry. A nil registry
// gets a fresh one, so collectors never touch the global default registry.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordValidation(metrics.ResultInvalid, "pattern", elapsed)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		validationMetrics: NewValidationMetrics(cfg, registry),
		schemaMetrics:     NewSchemaMetrics(cfg, registry),
		watchMetrics:      NewWatchMetrics(cfg, registry),
	}
}

// Disabled returns a collector that records nothing.
func Disabled() *Collector {
	return NewCollector(&config.MetricsConfig{Enabled: false}, nil)
}

// Enabled reports whether the collector records metrics.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordValidation records one validation run.
//
// Parameters:
//   - result: ResultValid, ResultInvalid or ResultError
//   - rule: name of the failing rule, or RuleNone
//   - duration: wall time of the run
func (c *Collector) RecordValidation(result, rule string, duration time.Duration) {
	if !c.Enabled() {
		return
	}
	if rule == "" {
		rule = RuleNone
	}

	c.validationMetrics.RecordRun(result, rule, duration)
}

// RecordSchemaLoad records one schema load.
//
// Parameters:
//   - result: ResultSuccess or ResultFailure
//   - duration: time spent reading and building the schema
//   - tables, fields: size of the loaded schema (ignored on failure)
func (c *Collector) RecordSchemaLoad(result string, duration time.Duration, tables, fields int) {
	if !c.Enabled() {
		return
	}

	c.schemaMetrics.RecordLoad(result, duration)
	if result == ResultSuccess {
		c.schemaMetrics.UpdateSize(tables, fields)
	}
}

// RecordWatchTrigger records a re-validation started by the watcher.
//
// Parameters:
//   - trigger: "config", "schema" or "schedule"
func (c *Collector) RecordWatchTrigger(trigger string) {
	if !c.Enabled() {
		return
	}

	c.watchMetrics.RecordTrigger(trigger)
}

// RecordHistoryPruned records records removed by retention pruning.
func (c *Collector) RecordHistoryPruned(count int64) {
	if !c.Enabled() {
		return
	}

	c.watchMetrics.RecordPruned(count)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
