package metrics

import (
	"runbeam/harmony-validator/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// WatchMetrics tracks the long-running watch mode.
//
// Metrics:
//   - harmony_validator_watch_triggers_total: Re-validations by trigger
//   - harmony_validator_history_pruned_total: History records removed by retention
type WatchMetrics struct {
	triggersTotal *prometheus.CounterVec
	prunedTotal   prometheus.Counter
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		triggersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_triggers_total",
				Help:      "Total number of re-validations started in watch mode",
			},
			[]string{"trigger"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_pruned_total",
				Help:      "Total number of history records removed by retention",
			},
		),
	}

	registry.MustRegister(wm.triggersTotal, wm.prunedTotal)

	return wm
}

// RecordTrigger records a re-validation trigger.
func (wm *WatchMetrics) RecordTrigger(trigger string) {
	wm.triggersTotal.WithLabelValues(trigger).Inc()
}

// RecordPruned adds pruned records to the counter.
func (wm *WatchMetrics) RecordPruned(count int64) {
	if count > 0 {
		wm.prunedTotal.Add(float64(count))
	}
}
