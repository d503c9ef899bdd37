package main

import (
	"encoding/json"
	"strings"
	"testing"

	"runbeam/harmony-validator/pkg/config"
)

func TestSchemaCheck(t *testing.T) {
	tests := []struct {
		name       string
		schema     string
		wantCode   int
		wantStdout string
	}{
		{"valid schema", testSchema, 0, "✓ Schema testdata/harmony-schema.toml is valid"},
		{"no tables", "testdata/broken-schema.toml", 2, "Schema must contain [[table]] definitions"},
		{"missing file", "testdata/nonexistent-schema.toml", 2, "Schema file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, nil, nil, "schema", "check", tt.schema)
			if res.code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstdout: %s", res.code, tt.wantCode, res.stdout)
			}
			if !strings.Contains(res.stdout, tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", res.stdout, tt.wantStdout)
			}
		})
	}
}

func TestSchemaCheck_DefaultPathFromConfig(t *testing.T) {
	withConfig(t, func(cfg *config.Config) {
		cfg.Schema.Path = testSchema
	})

	res := execute(t, nil, nil, "schema", "check")
	if res.code != 0 {
		t.Errorf("exit code = %d, want 0\nstdout: %s", res.code, res.stdout)
	}
}

func TestSchemaInspect(t *testing.T) {
	res := execute(t, nil, nil, "schema", "inspect", testSchema)
	if res.code != 0 {
		t.Fatalf("exit code = %d\nstdout: %s\nstderr: %s", res.code, res.stdout, res.stderr)
	}
	for _, want := range []string{
		"Version: 1.2",
		"Tables: 2, Fields: 6",
		"[proxy] (required)",
		"[network.*] (pattern)",
		"port: integer (min=1 max=65535)",
		"interface: string (required_if=enable_wireguard == true)",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestSchemaInspect_JSON(t *testing.T) {
	res := execute(t, nil, nil, "schema", "inspect", testSchema, "-o", "json")
	if res.code != 0 {
		t.Fatalf("exit code = %d\nstdout: %s", res.code, res.stdout)
	}

	var summary struct {
		Version string `json:"version"`
		Tables  []struct {
			Name   string `json:"name"`
			Fields []struct {
				Name string `json:"name"`
			} `json:"fields"`
		} `json:"tables"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &summary); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if summary.Version != "1.2" || len(summary.Tables) != 2 {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.Tables[0].Fields) != 3 {
		t.Errorf("proxy fields = %d, want 3", len(summary.Tables[0].Fields))
	}
}

func TestSchemaInspect_LoadFailure(t *testing.T) {
	res := execute(t, nil, nil, "schema", "inspect", "testdata/broken-schema.toml")
	if res.code != 2 {
		t.Errorf("exit code = %d, want 2", res.code)
	}
}
