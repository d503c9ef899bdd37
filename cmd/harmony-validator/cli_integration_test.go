//go:build integration

package main_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestValidateExitCodes runs the built binary and checks the exit status
// for each outcome.
func TestValidateExitCodes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildBinary(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"valid", []string{"validate", "testdata/valid.toml", "-s", "testdata/harmony-schema.toml"}, 0},
		{"invalid", []string{"validate", "testdata/invalid-port.toml", "-s", "testdata/harmony-schema.toml"}, 1},
		{"schema load failure", []string{"schema", "check", "testdata/broken-schema.toml"}, 2},
		{"usage error", []string{"validate"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("failed to run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, output)
			}
		})
	}
}

// TestWatchReadiness starts watch mode, breaks the watched config and
// expects readiness to follow, then stops the process with SIGINT.
func TestWatchReadiness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	binaryPath := buildBinary(t)
	tmpDir := t.TempDir()

	schemaData, err := os.ReadFile("testdata/harmony-schema.toml")
	if err != nil {
		t.Fatal(err)
	}
	schemaPath := filepath.Join(tmpDir, "harmony-schema.toml")
	writeTestFile(t, schemaPath, string(schemaData))

	configPath := filepath.Join(tmpDir, "config.toml")
	writeTestFile(t, configPath, "[proxy]\nid = \"edge-01\"\n")

	addr := freeAddress(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "watch", configPath,
		"--schema", schemaPath,
		"--listen", addr,
		"--debounce", "50ms",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start watch: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}()

	readyURL := "http://" + addr + "/readyz"
	if !waitForStatus(readyURL, http.StatusOK, 10*time.Second) {
		t.Fatalf("watch never became ready\nStdout: %s\nStderr: %s", stdout.String(), stderr.String())
	}

	writeTestFile(t, configPath, "[proxy]\nid = \"Not Valid\"\n")
	if !waitForStatus(readyURL, http.StatusServiceUnavailable, 10*time.Second) {
		t.Fatalf("readiness did not follow the broken config\nStdout: %s", stdout.String())
	}

	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "harmony_validator_validations_total") {
		t.Errorf("metrics output missing validations counter")
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Fatalf("failed to send SIGINT: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch exited with %v\nStderr: %s", err, stderr.String())
		}
	case <-time.After(5 * time.Second):
		t.Error("watch did not shut down within 5 seconds")
	}

	if !strings.Contains(stdout.String(), "does not match pattern") {
		t.Errorf("stdout should report the broken config:\n%s", stdout.String())
	}
}

// buildBinary builds the harmony-validator binary into a temp directory.
func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "harmony-validator")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build harmony-validator: %v\nOutput: %s", err, output)
	}
	return binaryPath
}

// freeAddress returns a loopback address with a port that was free.
func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().String()
}

// waitForStatus polls url until it answers with status.
func waitForStatus(url string, status int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 1 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == status {
				return true
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
