package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"runbeam/harmony-validator/pkg/config"
)

func TestHistory_Disabled(t *testing.T) {
	withConfig(t, func(cfg *config.Config) {
		cfg.History.Enabled = false
	})

	res := execute(t, nil, nil, "history")
	if res.code != 3 {
		t.Errorf("exit code = %d, want 3", res.code)
	}
	if !strings.Contains(res.stderr, "run history is disabled") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestHistory_RecordsValidateRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	withConfig(t, func(cfg *config.Config) {
		cfg.History.Enabled = true
		cfg.History.Backend = "sqlite"
		cfg.History.SQLite.Path = dbPath
		cfg.History.SQLite.Driver = "sqlite"
	})

	if res := execute(t, nil, nil, "validate", "testdata/valid.toml", "-s", testSchema); res.code != 0 {
		t.Fatalf("valid run exit code = %d\nstdout: %s\nstderr: %s", res.code, res.stdout, res.stderr)
	}
	if res := execute(t, nil, nil, "validate", "testdata/invalid-port.toml", "-s", testSchema); res.code != 1 {
		t.Fatalf("invalid run exit code = %d", res.code)
	}

	res := execute(t, nil, nil, "history")
	if res.code != 0 {
		t.Fatalf("history exit code = %d\nstderr: %s", res.code, res.stderr)
	}
	for _, want := range []string{"Total runs: 2", "Outcome: valid", "Outcome: invalid", "Trigger: cli"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}

	res = execute(t, nil, nil, "history", "--outcome", "invalid", "--format", "json")
	if res.code != 0 {
		t.Fatalf("history exit code = %d\nstderr: %s", res.code, res.stderr)
	}
	var list struct {
		Total int64 `json:"total"`
		Runs  []struct {
			ConfigPath string `json:"config_path"`
			Rule       string `json:"rule"`
			FieldPath  string `json:"field_path"`
		} `json:"runs"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &list); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, res.stdout)
	}
	if list.Total != 1 || len(list.Runs) != 1 {
		t.Fatalf("list = %+v, want one invalid run", list)
	}
	if list.Runs[0].Rule != "max" || list.Runs[0].FieldPath != "network.default.port" {
		t.Errorf("run = %+v", list.Runs[0])
	}

	res = execute(t, nil, nil, "history", "--config-path", "testdata/valid.toml", "--limit", "1")
	if !strings.Contains(res.stdout, "Total runs: 1") {
		t.Errorf("filtered stdout:\n%s", res.stdout)
	}
}

func TestHistory_InvalidOutcome(t *testing.T) {
	withConfig(t, func(cfg *config.Config) {
		cfg.History.Enabled = true
		cfg.History.Backend = "memory"
	})

	res := execute(t, nil, nil, "history", "--outcome", "broken")
	if res.code != 3 {
		t.Errorf("exit code = %d, want 3", res.code)
	}
}
