// Package telemetry bundles the observability components of
// harmony-validator: structured logging, Prometheus metrics, OpenTelemetry
// tracing, and the watch-mode health endpoints.
//
// # Components
//
//   - logging: slog-based logging with secret redaction
//   - metrics: validation, schema-load and watch metrics
//   - tracing: OTLP span export for validation runs
//   - health: liveness, readiness (last run valid) and version endpoints
//
// # Usage
//
//	tel, err := telemetry.New(&cfg.Telemetry, telemetry.BuildInfo{Version: version})
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	tel.Logger().Info("validation passed", "config", path)
//	tel.Metrics().RecordValidation(metrics.ResultValid, metrics.RuleNone, elapsed)
//	ctx, span := tel.Tracer().Start(ctx, tracing.SpanValidate)
//	defer span.End()
package telemetry
