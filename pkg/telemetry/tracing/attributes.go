package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanValidate   = "tomlschema.validate"
	SpanLoadSchema = "tomlschema.load_schema"
	SpanWatchRun   = "watch.revalidate"
	SpanHistory    = "history.record"
)

// Attribute keys. Custom keys use the "harmony.*" namespace.
const (
	AttrRunID      = "harmony.run_id"
	AttrConfigPath = "harmony.config.path"
	AttrSchemaPath = "harmony.schema.path"
	AttrFormat     = "harmony.format"

	AttrSchemaVersion = "harmony.schema.version"
	AttrSchemaTables  = "harmony.schema.tables"
	AttrSchemaFields  = "harmony.schema.fields"

	AttrResult    = "harmony.result"
	AttrRule      = "harmony.rule"
	AttrFieldPath = "harmony.field_path"
	AttrErrorKind = "harmony.error.kind"

	AttrTrigger = "harmony.watch.trigger"

	AttrErrorMessage = "error.message"
)

// SetRunAttributes sets the inputs of a validation run on a span.
// Empty values are skipped.
func SetRunAttributes(span trace.Span, runID, configPath, schemaPath string) {
	attrs := make([]attribute.KeyValue, 0, 3)
	if runID != "" {
		attrs = append(attrs, attribute.String(AttrRunID, runID))
	}
	if configPath != "" {
		attrs = append(attrs, attribute.String(AttrConfigPath, configPath))
	}
	if schemaPath != "" {
		attrs = append(attrs, attribute.String(AttrSchemaPath, schemaPath))
	}
	span.SetAttributes(attrs...)
}

// SetSchemaAttributes records the size of a loaded schema.
func SetSchemaAttributes(span trace.Span, version string, tables, fields int) {
	span.SetAttributes(
		attribute.String(AttrSchemaVersion, version),
		attribute.Int(AttrSchemaTables, tables),
		attribute.Int(AttrSchemaFields, fields),
	)
}

// SetFailureAttributes records where a validation run failed and marks the
// span as an error.
//
// Example:
//
//	SetFailureAttributes(span, "type_mismatch", "type", "proxy.port", err)
func SetFailureAttributes(span trace.Span, kind, rule, fieldPath string, err error) {
	span.SetAttributes(
		attribute.String(AttrResult, "invalid"),
		attribute.String(AttrErrorKind, kind),
		attribute.String(AttrRule, rule),
		attribute.String(AttrFieldPath, fieldPath),
	)
	if err != nil {
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSuccessAttributes marks a validation run as passed.
func SetSuccessAttributes(span trace.Span) {
	span.SetAttributes(attribute.String(AttrResult, "valid"))
	span.SetStatus(codes.Ok, "")
}

// AddEvent adds a named event to the span with optional attributes.
//
// Example:
//
//	AddEvent(span, "schema_reloaded", attribute.String(AttrSchemaPath, path))
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// AttributeBuilder provides a fluent interface for building span attributes.
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder creates a new attribute builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 8),
	}
}

// WithRun adds the run ID and input paths.
func (ab *AttributeBuilder) WithRun(runID, configPath, schemaPath string) *AttributeBuilder {
	if runID != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrRunID, runID))
	}
	if configPath != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrConfigPath, configPath))
	}
	if schemaPath != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrSchemaPath, schemaPath))
	}
	return ab
}

// WithFormat adds the document format.
func (ab *AttributeBuilder) WithFormat(format string) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.String(AttrFormat, format))
	return ab
}

// WithTrigger adds the watch trigger.
func (ab *AttributeBuilder) WithTrigger(trigger string) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.String(AttrTrigger, trigger))
	return ab
}

// WithCustom adds a custom attribute. Unsupported value types are dropped.
func (ab *AttributeBuilder) WithCustom(key string, value any) *AttributeBuilder {
	switch v := value.(type) {
	case string:
		ab.attrs = append(ab.attrs, attribute.String(key, v))
	case int:
		ab.attrs = append(ab.attrs, attribute.Int(key, v))
	case int64:
		ab.attrs = append(ab.attrs, attribute.Int64(key, v))
	case float64:
		ab.attrs = append(ab.attrs, attribute.Float64(key, v))
	case bool:
		ab.attrs = append(ab.attrs, attribute.Bool(key, v))
	}
	return ab
}

// Build returns a span start option carrying the attributes.
func (ab *AttributeBuilder) Build() trace.SpanStartOption {
	return trace.WithAttributes(ab.attrs...)
}

// Attributes returns the collected attributes.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}
