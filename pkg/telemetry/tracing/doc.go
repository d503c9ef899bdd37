// Package tracing provides OpenTelemetry tracing for harmony-validator.
//
// # Spans
//
// Every validation run produces one trace:
//
//	tomlschema.validate           run id, config path, result, failing rule
//	└── tomlschema.load_schema    schema path, version, table and field counts
//
// Watch mode adds a watch.revalidate span per trigger, parenting the run.
//
// # Export
//
// Spans are exported over OTLP gRPC to telemetry.tracing.endpoint. The
// connection is established lazily, so an unreachable collector never
// fails a validation. When tracing is disabled a noop tracer is used.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
// # Trace Context
//
// A CLI run started inside a traced CI pipeline joins the pipeline trace
// through the TRACEPARENT and TRACESTATE environment variables:
//
//	ctx = tracing.ExtractFromEnv(ctx)
//
// The watch-mode HTTP endpoints accept W3C traceparent headers via
// HTTPMiddleware.
package tracing
