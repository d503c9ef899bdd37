package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"runbeam/harmony-validator/pkg/config"
)

func TestMain(m *testing.M) {
	if err := config.Initialize(""); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

type execResult struct {
	code   int
	stdout string
	stderr string
}

// execute runs the CLI with args after resetting every flag variable,
// since cobra keeps values between executions.
func execute(t *testing.T, ctx context.Context, stdin io.Reader, args ...string) execResult {
	t.Helper()

	cfgFile, verbose, quiet, outputFormat = "", false, false, ""
	validateFlags.schemaPath = ""
	watchFlags.schemaPath = ""
	watchFlags.listenAddress = ""
	watchFlags.schedule = ""
	watchFlags.debounce = 0
	watchFlags.noServer = false
	historyFlags.limit = 0
	historyFlags.outcome = ""
	historyFlags.configPath = ""
	historyFlags.since = 0

	if ctx == nil {
		ctx = context.Background()
	}
	if stdin == nil {
		stdin = strings.NewReader("")
	}

	var stdout, stderr bytes.Buffer
	code := run(ctx, args, stdin, &stdout, &stderr)
	return execResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// withConfig replaces the global configuration for one test.
func withConfig(t *testing.T, mutate func(cfg *config.Config)) {
	t.Helper()

	original := config.GetConfig()
	cfg := config.NewDefault()
	mutate(cfg)
	config.SetConfig(cfg)
	t.Cleanup(func() { config.SetConfig(original) })
}

func TestUnknownCommand(t *testing.T) {
	res := execute(t, nil, nil, "frobnicate")
	if res.code != 3 {
		t.Errorf("exit code = %d, want 3", res.code)
	}
	if !strings.Contains(res.stderr, "unknown command") {
		t.Errorf("stderr = %q, want unknown command", res.stderr)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	res := execute(t, nil, nil, "validate", "testdata/valid.toml", "--schema", "testdata/harmony-schema.toml", "--format", "xml")
	if res.code != 3 {
		t.Errorf("exit code = %d, want 3", res.code)
	}
	if !strings.Contains(res.stderr, "output.format") {
		t.Errorf("stderr = %q, want an output.format error", res.stderr)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		res := execute(t, nil, nil, "completion", shell)
		if res.code != 0 {
			t.Errorf("completion %s exit code = %d, stderr %q", shell, res.code, res.stderr)
		}
		if res.stdout == "" {
			t.Errorf("completion %s printed nothing", shell)
		}
	}

	if res := execute(t, nil, nil, "completion", "tcsh"); res.code != 3 {
		t.Errorf("completion tcsh exit code = %d, want 3", res.code)
	}
}
