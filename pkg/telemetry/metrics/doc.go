// Package metrics provides Prometheus metrics for harmony-validator.
//
// # Metrics Categories
//
//   - Validation Metrics: run count by result and failing rule, run
//     duration, and the outcome and time of the latest run
//   - Schema Metrics: schema loads by result, load duration, and the size
//     of the last loaded schema
//   - Watch Metrics: re-validation triggers and history retention pruning
//
// Every metric lives on the collector's own registry; nothing is added to
// the Prometheus default registry.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordSchemaLoad(metrics.ResultSuccess, elapsed, len(def.Tables), def.FieldCount())
//	collector.RecordValidation(metrics.ResultInvalid, "required", elapsed)
//
//	// Watch mode serves the registry
//	mux.Handle("/metrics", collector.Handler())
//
// # Labels
//
// The rule label takes the rule names reported by validation errors
// (type, required, enum, min, max, min_items, max_items, pattern), "none"
// for runs that did not fail on a rule. The set is closed, so label
// cardinality is bounded.
package metrics
