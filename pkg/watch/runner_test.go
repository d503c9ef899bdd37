package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"runbeam/harmony-validator/pkg/config"
	"runbeam/harmony-validator/pkg/history"
	"runbeam/harmony-validator/pkg/telemetry"
	"runbeam/harmony-validator/pkg/tomlschema"
	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
)

const testSchema = `
[[table]]
name = "proxy"
required = true

[[table.field]]
name = "id"
type = "string"
required = true

[[table.field]]
name = "port"
type = "integer"
max = 65535
`

type fixture struct {
	configPath string
	schemaPath string
	store      *history.MemoryStore
	tel        *telemetry.Telemetry
	runner     *Runner
	results    chan Result
}

func newFixture(t *testing.T, configText string) *fixture {
	t.Helper()

	dir := t.TempDir()
	f := &fixture{
		configPath: filepath.Join(dir, "harmony.toml"),
		schemaPath: filepath.Join(dir, "harmony-schema.toml"),
		store:      history.NewMemoryStore(0),
		tel:        telemetry.Nop(),
		results:    make(chan Result, 32),
	}
	writeFile(t, f.configPath, configText)
	writeFile(t, f.schemaPath, testSchema)

	runner, err := NewRunner(Options{
		ConfigPath: f.configPath,
		SchemaPath: f.schemaPath,
		Watch: config.WatchConfig{
			Debounce:   20 * time.Millisecond,
			Extensions: []string{".toml"},
		},
		Validator: tomlschema.New(tomlschema.Options{History: f.store}),
		Telemetry: f.tel,
		OnResult:  func(r Result) { f.results <- r },
	})
	if err != nil {
		t.Fatalf("NewRunner() failed: %v", err)
	}
	f.runner = runner
	return f
}

func TestNewRunner_Errors(t *testing.T) {
	v := tomlschema.New(tomlschema.Options{})

	tests := []struct {
		name string
		opts Options
	}{
		{"missing config path", Options{SchemaPath: "s.toml", Validator: v}},
		{"missing schema path", Options{ConfigPath: "c.toml", Validator: v}},
		{"missing validator", Options{ConfigPath: "c.toml", SchemaPath: "s.toml"}},
		{"bad schedule", Options{ConfigPath: "c.toml", SchemaPath: "s.toml", Validator: v,
			Watch: config.WatchConfig{Schedule: "sometimes"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(tt.opts); err == nil {
				t.Error("NewRunner() should fail")
			}
		})
	}
}

func TestRunner_Revalidate(t *testing.T) {
	f := newFixture(t, "[proxy]\nid = \"edge\"\nport = 8080\n")
	ctx := context.Background()

	result := f.runner.Revalidate(ctx, history.TriggerStartup)
	if !result.Valid() {
		t.Fatalf("startup run = %v, want valid", result.Err)
	}
	if result.RunID == "" || result.Trigger != history.TriggerStartup {
		t.Errorf("result = %+v", result)
	}
	if err := f.tel.LastRun().Check(ctx); err != nil {
		t.Errorf("readiness after valid run = %v", err)
	}

	writeFile(t, f.configPath, "[proxy]\nid = \"edge\"\nport = 70000\n")
	result = f.runner.Revalidate(ctx, history.TriggerConfig)
	if !errors.Is(result.Err, schemaErrors.ErrConstraintViolation) {
		t.Fatalf("config run = %v, want constraint violation", result.Err)
	}
	if err := f.tel.LastRun().Check(ctx); err == nil {
		t.Error("readiness should fail after an invalid run")
	}

	runs, _ := f.store.List(ctx, nil)
	if len(runs) != 2 {
		t.Fatalf("history has %d runs, want 2", len(runs))
	}
	if runs[0].ID != result.RunID || runs[0].Trigger != history.TriggerConfig {
		t.Errorf("latest history run = %+v, want id %s and config trigger", runs[0], result.RunID)
	}

	if len(f.results) != 2 {
		t.Errorf("OnResult called %d times, want 2", len(f.results))
	}
}

func TestRunner_SchemaReload(t *testing.T) {
	f := newFixture(t, "[proxy]\nid = \"edge\"\nport = 8080\n")
	ctx := context.Background()

	if r := f.runner.Revalidate(ctx, history.TriggerStartup); !r.Valid() {
		t.Fatalf("startup run = %v", r.Err)
	}

	// Lower the bound; a config-triggered run keeps the cached schema.
	writeFile(t, f.schemaPath, `
[[table]]
name = "proxy"

[[table.field]]
name = "port"
type = "integer"
max = 1024
`)
	if r := f.runner.Revalidate(ctx, history.TriggerConfig); !r.Valid() {
		t.Errorf("config run with cached schema = %v, want valid", r.Err)
	}

	r := f.runner.Revalidate(ctx, history.TriggerSchema)
	if !errors.Is(r.Err, schemaErrors.ErrConstraintViolation) {
		t.Errorf("schema run = %v, want max violation from reloaded schema", r.Err)
	}
}

func TestRunner_BrokenSchemaIsRetried(t *testing.T) {
	f := newFixture(t, "[proxy]\nid = \"edge\"\n")
	ctx := context.Background()

	writeFile(t, f.schemaPath, "title = \"no tables\"\n")
	r := f.runner.Revalidate(ctx, history.TriggerStartup)
	var loadErr *schemaErrors.SchemaLoadError
	if !errors.As(r.Err, &loadErr) {
		t.Fatalf("startup run = %v, want *SchemaLoadError", r.Err)
	}

	writeFile(t, f.schemaPath, testSchema)
	if r := f.runner.Revalidate(ctx, history.TriggerConfig); !r.Valid() {
		t.Errorf("run after schema fix = %v, want valid", r.Err)
	}
}

func TestRunner_RunReactsToChanges(t *testing.T) {
	f := newFixture(t, "[proxy]\nid = \"edge\"\nport = 8080\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- f.runner.Run(ctx) }()

	select {
	case r := <-f.results:
		if r.Trigger != history.TriggerStartup || !r.Valid() {
			t.Fatalf("first result = %+v, want valid startup run", r)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no startup result")
	}

	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case r := <-f.results:
			if r.Trigger != history.TriggerConfig {
				continue
			}
			if r.Valid() {
				t.Error("config change to port 70000 should be invalid")
			}
			cancel()
			if err := <-errCh; err != nil {
				t.Errorf("Run() returned %v", err)
			}
			return
		case <-ticker.C:
			_ = os.WriteFile(f.configPath, []byte("[proxy]\nid = \"edge\"\nport = 70000\n"), 0o644)
		case <-deadline:
			t.Fatal("no config-triggered result")
		}
	}
}

func TestRunner_TriggerFor(t *testing.T) {
	f := newFixture(t, "")

	if got := f.runner.triggerFor([]string{f.runner.configAbs}); got != history.TriggerConfig {
		t.Errorf("triggerFor(config) = %q", got)
	}
	if got := f.runner.triggerFor([]string{f.runner.configAbs, f.runner.schemaAbs}); got != history.TriggerSchema {
		t.Errorf("triggerFor(config, schema) = %q", got)
	}
}
