package cli

import (
	"errors"
	"fmt"
	"testing"

	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
)

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "with field",
			err:  NewConfigError("watch.schedule", "invalid cron expression"),
			want: "config error in watch.schedule: invalid cron expression",
		},
		{
			name: "without field",
			err:  NewConfigError("", "failed to load config"),
			want: "config error: failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("history", underlyingErr)

	expected := "command history failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestExitCode(t *testing.T) {
	validation := schemaErrors.NewMissingTable("proxy")
	schemaLoad := schemaErrors.NewSchemaLoadError("Schema file not found: x.toml", "x.toml", nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"validation error", validation, ExitValidationFailed},
		{"wrapped validation error", fmt.Errorf("validate: %w", validation), ExitValidationFailed},
		{"schema load error", schemaLoad, ExitSchemaLoadFailed},
		{"command wrapping schema load", NewCommandError("validate", schemaLoad), ExitSchemaLoadFailed},
		{"config error", NewConfigError("", "bad"), ExitError},
		{"plain error", errors.New("boom"), ExitError},
		{"explicit exit error", &ExitError{Code: 7}, 7},
		{"exit error for validation", NewExitError(validation), ExitValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("boom")
	err := NewExitError(cause)

	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want boom", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should reach the cause")
	}
	if !IsReported(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsReported() = false for wrapped ExitError")
	}
	if IsReported(cause) {
		t.Error("IsReported() = true for plain error")
	}

	bare := &ExitError{Code: ExitValidationFailed}
	if bare.Error() != "exit status 1" {
		t.Errorf("Error() = %q, want exit status 1", bare.Error())
	}
}
