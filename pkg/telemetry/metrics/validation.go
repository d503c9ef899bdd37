package metrics

import (
	"time"

	"runbeam/harmony-validator/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ValidationMetrics tracks configuration validation runs.
//
// Metrics:
//   - harmony_validator_validations_total: Runs by result and failing rule
//   - harmony_validator_validation_duration_seconds: Run duration by result
//   - harmony_validator_last_run_valid: 1 if the latest run passed, 0 otherwise
//   - harmony_validator_last_run_timestamp_seconds: Unix time of the latest run
type ValidationMetrics struct {
	runsTotal    *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	lastRunValid prometheus.Gauge
	lastRunTime  prometheus.Gauge
}

// NewValidationMetrics creates and registers validation metrics with the provided registry.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validations_total",
				Help:      "Total number of configuration validation runs",
			},
			[]string{"result", "rule"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of configuration validation runs in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"result"},
		),

		lastRunValid: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_valid",
				Help:      "Whether the latest validation run passed (1) or not (0)",
			},
		),

		lastRunTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the latest validation run",
			},
		),
	}

	registry.MustRegister(
		vm.runsTotal,
		vm.runDuration,
		vm.lastRunValid,
		vm.lastRunTime,
	)

	return vm
}

// RecordRun records a completed run.
func (vm *ValidationMetrics) RecordRun(result, rule string, duration time.Duration) {
	vm.runsTotal.WithLabelValues(result, rule).Inc()
	vm.runDuration.WithLabelValues(result).Observe(duration.Seconds())

	if result == ResultValid {
		vm.lastRunValid.Set(1)
	} else {
		vm.lastRunValid.Set(0)
	}
	vm.lastRunTime.SetToCurrentTime()
}
