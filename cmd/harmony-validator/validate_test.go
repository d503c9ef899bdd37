package main

import (
	"encoding/json"
	"strings"
	"testing"
)

const testSchema = "testdata/harmony-schema.toml"

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{
			name:       "valid config",
			args:       []string{"validate", "testdata/valid.toml", "--schema", testSchema},
			wantCode:   0,
			wantStdout: "✓ testdata/valid.toml is valid",
		},
		{
			name:       "constraint violation",
			args:       []string{"validate", "testdata/invalid-port.toml", "-s", testSchema},
			wantCode:   1,
			wantStdout: "Value 70000 at 'network.default.port' exceeds maximum 65535",
		},
		{
			name:       "missing config file",
			args:       []string{"validate", "testdata/nonexistent.toml", "-s", testSchema},
			wantCode:   1,
			wantStdout: "Config file not found: testdata/nonexistent.toml",
		},
		{
			name:       "schema without tables",
			args:       []string{"validate", "testdata/valid.toml", "-s", "testdata/broken-schema.toml"},
			wantCode:   2,
			wantStdout: "Schema must contain [[table]] definitions",
		},
		{
			name:       "missing schema file",
			args:       []string{"validate", "testdata/valid.toml", "-s", "testdata/nonexistent-schema.toml"},
			wantCode:   2,
			wantStdout: "Schema file not found: testdata/nonexistent-schema.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, nil, nil, tt.args...)
			if res.code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstdout: %s\nstderr: %s", res.code, tt.wantCode, res.stdout, res.stderr)
			}
			if !strings.Contains(res.stdout, tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", res.stdout, tt.wantStdout)
			}
			if strings.Contains(res.stderr, "Error:") {
				t.Errorf("reported failures should not be printed again: %q", res.stderr)
			}
		})
	}
}

func TestValidateCommand_NeedsOneArgument(t *testing.T) {
	res := execute(t, nil, nil, "validate")
	if res.code != 3 {
		t.Errorf("exit code = %d, want 3", res.code)
	}
}

func TestValidateCommand_Stdin(t *testing.T) {
	stdin := strings.NewReader("[proxy]\nid = \"edge-01\"\n")
	res := execute(t, nil, stdin, "validate", "-", "--schema", testSchema)
	if res.code != 0 {
		t.Fatalf("exit code = %d\nstdout: %s", res.code, res.stdout)
	}
	if !strings.Contains(res.stdout, "✓ <stdin> is valid") {
		t.Errorf("stdout = %q", res.stdout)
	}

	stdin = strings.NewReader("[proxy\n")
	res = execute(t, nil, stdin, "validate", "-", "--schema", testSchema)
	if res.code != 1 {
		t.Errorf("invalid TOML exit code = %d, want 1", res.code)
	}
	if !strings.Contains(res.stdout, "Invalid TOML") {
		t.Errorf("stdout = %q, want Invalid TOML", res.stdout)
	}
}

func TestValidateCommand_JSONRedactsSecrets(t *testing.T) {
	res := execute(t, nil, nil, "validate", "testdata/secret-token.toml", "--schema", testSchema, "--format", "json")
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1\nstdout: %s", res.code, res.stdout)
	}
	if strings.Contains(res.stdout, "sk-live-1234567890abcdef") {
		t.Errorf("output leaks the token:\n%s", res.stdout)
	}

	var result struct {
		RunID string `json:"run_id"`
		Valid bool   `json:"valid"`
		Error struct {
			Rule      string `json:"rule"`
			FieldPath string `json:"field_path"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &result); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, res.stdout)
	}
	if result.RunID == "" {
		t.Error("run_id should be set")
	}
	if result.Valid {
		t.Error("valid should be false")
	}
	if result.Error.Rule != "pattern" || result.Error.FieldPath != "proxy.api_token" {
		t.Errorf("error = %+v, want pattern at proxy.api_token", result.Error)
	}
}
