package tomlschema

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"runbeam/harmony-validator/pkg/config"
	"runbeam/harmony-validator/pkg/history"
	"runbeam/harmony-validator/pkg/telemetry/logging"
	"runbeam/harmony-validator/pkg/telemetry/metrics"
	"runbeam/harmony-validator/pkg/telemetry/tracing"
	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
)

const schemaPath = "testdata/harmony-schema.toml"

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantKind   schemaErrors.Kind
		wantRule   string
		wantField  string
		wantMsg    string
	}{
		{
			name:       "valid toml",
			configPath: "testdata/valid.toml",
		},
		{
			name:       "valid yaml",
			configPath: "testdata/valid.yaml",
		},
		{
			name:       "port above maximum",
			configPath: "testdata/invalid-port.toml",
			wantKind:   schemaErrors.KindConstraintViolation,
			wantRule:   schemaErrors.RuleMax,
			wantField:  "network.default.port",
			wantMsg:    "exceeds maximum 65535",
		},
		{
			name:       "missing required table",
			configPath: "testdata/missing-proxy.toml",
			wantKind:   schemaErrors.KindMissingRequired,
			wantRule:   schemaErrors.RuleRequired,
			wantField:  "proxy",
			wantMsg:    "Required table 'proxy' is missing",
		},
		{
			name:       "conditional requirement",
			configPath: "testdata/missing-interface.toml",
			wantKind:   schemaErrors.KindMissingRequired,
			wantRule:   schemaErrors.RuleRequired,
			wantField:  "network.edge.interface",
			wantMsg:    "required when: enable_wireguard == true",
		},
		{
			name:       "invalid syntax",
			configPath: "testdata/invalid-syntax.toml",
			wantKind:   schemaErrors.KindValidation,
			wantMsg:    "Invalid TOML: ",
		},
		{
			name:       "missing config file",
			configPath: "testdata/does-not-exist.toml",
			wantKind:   schemaErrors.KindValidation,
			wantMsg:    "Config file not found: testdata/does-not-exist.toml",
		},
	}

	v := New(Options{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFile(context.Background(), tt.configPath, schemaPath)

			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("ValidateFile() = %v, want nil", err)
				}
				return
			}

			var verr *schemaErrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateFile() = %v (%T), want *ValidationError", err, err)
			}
			if verr.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", verr.Kind, tt.wantKind)
			}
			if verr.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", verr.Rule, tt.wantRule)
			}
			if verr.FieldPath != tt.wantField {
				t.Errorf("FieldPath = %q, want %q", verr.FieldPath, tt.wantField)
			}
			if !strings.Contains(verr.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", verr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateFile_SchemaErrors(t *testing.T) {
	v := New(Options{})

	err := v.ValidateFile(context.Background(), "testdata/valid.toml", "testdata/missing-schema.toml")
	var loadErr *schemaErrors.SchemaLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("ValidateFile() = %v (%T), want *SchemaLoadError", err, err)
	}
	if loadErr.SchemaPath != "testdata/missing-schema.toml" {
		t.Errorf("SchemaPath = %q", loadErr.SchemaPath)
	}
	if !strings.HasPrefix(loadErr.Message, "Schema file not found") {
		t.Errorf("Message = %q", loadErr.Message)
	}

	// The config is read before the schema.
	err = v.ValidateFile(context.Background(), "testdata/nope.toml", "testdata/missing-schema.toml")
	if !errors.Is(err, schemaErrors.ErrValidation) {
		t.Errorf("ValidateFile() = %v, want the config error first", err)
	}
}

func TestValidateContent(t *testing.T) {
	v := New(Options{})
	ctx := context.Background()

	if err := v.ValidateContent(ctx, "[proxy]\nid = \"edge-1\"\n", schemaPath); err != nil {
		t.Errorf("ValidateContent(valid) = %v", err)
	}

	err := v.ValidateContent(ctx, "[proxy]\nid = \"Edge 1\"\n", schemaPath)
	if !errors.Is(err, schemaErrors.ErrConstraintViolation) {
		t.Errorf("ValidateContent(bad id) = %v, want constraint violation", err)
	}

	err = v.ValidateContent(ctx, "[proxy\n", "testdata/missing-schema.toml")
	var verr *schemaErrors.ValidationError
	if !errors.As(err, &verr) || !strings.HasPrefix(verr.Message, "Invalid TOML: ") {
		t.Errorf("ValidateContent(bad syntax) = %v, want Invalid TOML before schema load", err)
	}
}

func TestValidateMap(t *testing.T) {
	v := New(Options{})
	ctx := context.Background()

	def, err := v.LoadSchemaFile(ctx, schemaPath)
	if err != nil {
		t.Fatalf("LoadSchemaFile() failed: %v", err)
	}

	config := map[string]any{
		"proxy":           map[string]any{"id": "edge-1"},
		"network.default": map[string]any{"port": 70000},
	}
	err = v.ValidateMap(ctx, config, def)
	if !errors.Is(err, schemaErrors.ErrConstraintViolation) {
		t.Fatalf("ValidateMap() = %v, want max violation on a plain int", err)
	}

	config["network.default"] = map[string]any{"port": 443}
	if err := v.ValidateMap(ctx, config, def); err != nil {
		t.Errorf("ValidateMap() = %v, want nil", err)
	}

	if err := v.ValidateMap(ctx, config, nil); err == nil {
		t.Error("ValidateMap() without schema should fail")
	}

	err = v.ValidateMap(ctx, map[string]any{"proxy": make(chan int)}, def)
	if !errors.Is(err, schemaErrors.ErrValidation) {
		t.Errorf("ValidateMap(chan) = %v, want validation error", err)
	}
}

func TestPackageLevel(t *testing.T) {
	def, err := LoadSchema(`
[[table]]
name = "proxy"
required = true

[[table.field]]
name = "id"
type = "string"
required = true
`)
	if err != nil {
		t.Fatalf("LoadSchema() failed: %v", err)
	}

	if err := Validate(map[string]any{"proxy": map[string]any{"id": "a"}}, def); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	err = Validate(map[string]any{"proxy": map[string]any{}}, def)
	if !errors.Is(err, schemaErrors.ErrMissingRequired) {
		t.Errorf("Validate() = %v, want missing required", err)
	}

	numbers, err := LoadSchema(`
[[table]]
name = "proxy"

[[table.field]]
name = "workers"
type = "integer"
enum = [1, 2, 3]

[[table.field]]
name = "port"
type = "integer"
max = 100
`)
	if err != nil {
		t.Fatalf("LoadSchema() failed: %v", err)
	}

	if err := Validate(map[string]any{"proxy": map[string]any{"workers": 2}}, numbers); err != nil {
		t.Errorf("Validate() with int enum member = %v, want nil", err)
	}

	err = Validate(map[string]any{"proxy": map[string]any{"port": uint(70000)}}, numbers)
	var verr *schemaErrors.ValidationError
	if !errors.As(err, &verr) || verr.Rule != schemaErrors.RuleMax {
		t.Errorf("Validate() with uint above max = %v, want max violation", err)
	}

	if _, err := LoadSchema(`title = "no tables"`); err == nil {
		t.Error("LoadSchema() without [[table]] should fail")
	}
}

func TestValidator_LoadSchema(t *testing.T) {
	v := New(Options{})

	_, err := v.LoadSchema(context.Background(), "[[table]\n")
	var loadErr *schemaErrors.SchemaLoadError
	if !errors.As(err, &loadErr) || !strings.HasPrefix(loadErr.Message, "Invalid TOML in schema: ") {
		t.Errorf("LoadSchema() = %v, want Invalid TOML in schema", err)
	}
}

func TestValidator_MaxFileSize(t *testing.T) {
	v := New(Options{MaxFileSize: 16})

	err := v.ValidateFile(context.Background(), "testdata/valid.toml", schemaPath)
	var verr *schemaErrors.ValidationError
	if !errors.As(err, &verr) || !strings.HasPrefix(verr.Message, "Cannot read config file") {
		t.Errorf("ValidateFile() = %v, want Cannot read config file", err)
	}
}

func TestValidator_RecordsHistory(t *testing.T) {
	store := history.NewMemoryStore(0)
	v := New(Options{History: store})

	ctx := logging.WithRunID(context.Background(), "run-fixed")
	ctx = WithTrigger(ctx, history.TriggerSchedule)

	_ = v.ValidateFile(ctx, "testdata/invalid-port.toml", schemaPath)
	_ = v.ValidateFile(context.Background(), "testdata/valid.toml", schemaPath)
	_ = v.ValidateFile(context.Background(), "testdata/valid.toml", "testdata/missing-schema.toml")

	runs, err := store.List(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("recorded %d runs, want 3", len(runs))
	}

	byOutcome := map[history.Outcome]*history.Run{}
	for _, run := range runs {
		byOutcome[run.Outcome] = run
	}

	invalid := byOutcome[history.OutcomeInvalid]
	if invalid == nil {
		t.Fatal("no invalid run recorded")
	}
	if invalid.ID != "run-fixed" || invalid.Trigger != history.TriggerSchedule {
		t.Errorf("invalid run = %+v, want context run id and trigger", invalid)
	}
	if invalid.Rule != "max" || invalid.FieldPath != "network.default.port" {
		t.Errorf("invalid run = %+v, want rule max at network.default.port", invalid)
	}

	valid := byOutcome[history.OutcomeValid]
	if valid == nil || valid.ID == "" || valid.Trigger != history.TriggerCLI {
		t.Errorf("valid run = %+v, want generated id and cli trigger", valid)
	}

	if errRun := byOutcome[history.OutcomeError]; errRun == nil || errRun.Kind != "schema_load" {
		t.Errorf("error run = %+v, want schema_load", errRun)
	}
}

func TestValidator_Metrics(t *testing.T) {
	cfg := config.NewDefault().Telemetry.Metrics
	registry := prometheus.NewRegistry()
	v := New(Options{Metrics: metrics.NewCollector(&cfg, registry)})

	ctx := context.Background()
	_ = v.ValidateFile(ctx, "testdata/valid.toml", schemaPath)
	_ = v.ValidateFile(ctx, "testdata/invalid-port.toml", schemaPath)
	_ = v.ValidateFile(ctx, "testdata/invalid-port.toml", schemaPath)

	tests := []struct {
		labels map[string]string
		want   float64
	}{
		{map[string]string{"result": "valid", "rule": "none"}, 1},
		{map[string]string{"result": "invalid", "rule": "max"}, 2},
	}
	for _, tt := range tests {
		if got := counterValue(t, registry, "harmony_validator_validations_total", tt.labels); got != tt.want {
			t.Errorf("validations_total%v = %v, want %v", tt.labels, got, tt.want)
		}
	}

	if got := counterValue(t, registry, "harmony_validator_schema_loads_total", map[string]string{"result": "success"}); got != 3 {
		t.Errorf("schema_loads_total{success} = %v, want 3", got)
	}
}

func TestValidator_Tracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := tracing.NewWithExporter(&config.TracingConfig{
		Enabled: true,
		Sampler: tracing.SamplerAlways,
	}, "test", exporter)
	if err != nil {
		t.Fatal(err)
	}
	defer tracer.Shutdown(context.Background())

	v := New(Options{Tracer: tracer, History: history.NewMemoryStore(0)})
	_ = v.ValidateFile(context.Background(), "testdata/invalid-port.toml", schemaPath)

	names := map[string]tracetest.SpanStub{}
	for _, span := range exporter.GetSpans() {
		names[span.Name] = span
	}

	for _, name := range []string{tracing.SpanValidate, tracing.SpanLoadSchema, tracing.SpanHistory} {
		if _, ok := names[name]; !ok {
			t.Errorf("span %q not exported; got %v", name, len(names))
		}
	}

	validate := names[tracing.SpanValidate]
	attrs := map[string]string{}
	for _, kv := range validate.Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[tracing.AttrResult] != "invalid" || attrs[tracing.AttrRule] != "max" {
		t.Errorf("validate span attributes = %v", attrs)
	}
	if attrs[tracing.AttrTrigger] != history.TriggerCLI {
		t.Errorf("trigger attribute = %q, want cli", attrs[tracing.AttrTrigger])
	}
}

func TestValidator_LogsRedactedFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Config{
		Level:        "debug",
		Format:       "json",
		RedactValues: true,
		Writer:       buf,
	})
	if err != nil {
		t.Fatal(err)
	}

	v := New(Options{Logger: logger})
	err = v.ValidateFile(context.Background(), "testdata/secret-token.toml", schemaPath)
	if !errors.Is(err, schemaErrors.ErrConstraintViolation) {
		t.Fatalf("ValidateFile() = %v, want pattern violation", err)
	}

	out := buf.String()
	if !strings.Contains(out, "validation failed") {
		t.Errorf("log output missing failure entry:\n%s", out)
	}
	if !strings.Contains(out, `"field":"proxy.api_token"`) {
		t.Errorf("log output missing field path:\n%s", out)
	}
	if strings.Contains(out, "1234567890abcdef") {
		t.Errorf("log output leaks the token:\n%s", out)
	}
}

func TestValidator_Concurrent(t *testing.T) {
	v := New(Options{History: history.NewMemoryStore(0)})
	def, err := v.LoadSchemaFile(context.Background(), schemaPath)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "harmony.toml")
	if err := os.WriteFile(path, []byte("[proxy]\nid = \"edge\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := make(chan error, 16)
	for i := 0; i < cap(errs); i++ {
		go func() {
			errs <- v.ValidateFileWith(context.Background(), path, def, schemaPath)
		}()
	}

	timeout := time.After(5 * time.Second)
	for i := 0; i < cap(errs); i++ {
		select {
		case err := <-errs:
			if err != nil {
				t.Errorf("ValidateFileWith() = %v", err)
			}
		case <-timeout:
			t.Fatal("timed out waiting for concurrent validations")
		}
	}
}

func counterValue(t *testing.T, registry *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metric:
		for _, m := range family.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metric
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}
