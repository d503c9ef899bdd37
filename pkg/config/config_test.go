package config

import (
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	if cfg.Schema.Path != DefaultSchemaPath {
		t.Errorf("expected schema path %q, got %q", DefaultSchemaPath, cfg.Schema.Path)
	}
	if cfg.Schema.MaxFileSize != DefaultSchemaMaxFileSize {
		t.Errorf("expected max file size %d, got %d", DefaultSchemaMaxFileSize, cfg.Schema.MaxFileSize)
	}
	if !cfg.Output.RedactSensitive {
		t.Error("expected redact_sensitive to default to true")
	}
	if cfg.History.Enabled {
		t.Error("expected history to be disabled by default")
	}
	if !cfg.History.SQLite.WALMode {
		t.Error("expected WAL mode to default to true")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to default to enabled")
	}
	if !cfg.Telemetry.Health.Enabled {
		t.Error("expected health checks to default to enabled")
	}
	if !cfg.Telemetry.Tracing.OTLP.Insecure {
		t.Error("expected OTLP insecure to default to true")
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", cfg.Watch.Debounce)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default configuration should be valid: %v", err)
	}
}

func TestNewDefault_IndependentSlices(t *testing.T) {
	a := NewDefault()
	b := NewDefault()

	a.Watch.Extensions[0] = ".ini"
	a.Telemetry.Metrics.DurationBuckets[0] = 42

	if b.Watch.Extensions[0] != ".toml" {
		t.Error("default extensions must not be shared between configs")
	}
	if DefaultDurationBuckets[0] == 42 {
		t.Error("default buckets must not be modified through a config")
	}
}
