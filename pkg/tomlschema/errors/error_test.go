package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Accessors(t *testing.T) {
	err := &ValidationError{
		Kind:      KindValidation,
		Message:   "Test error",
		FieldPath: "proxy.id",
		Rule:      RuleType,
		Actual:    12345,
		Expected:  "string",
	}

	if err.Error() != "Test error" {
		t.Errorf("Error() = %q, want %q", err.Error(), "Test error")
	}

	formatted := err.Format()
	for _, want := range []string{"Test error", "proxy.id", "type", "12345", "string"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() = %q, missing %q", formatted, want)
		}
	}
}

func TestValidationError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "message only",
			err:  NewValidationError("Invalid TOML: bad key"),
			want: "Invalid TOML: bad key",
		},
		{
			name: "missing table",
			err:  NewMissingTable("proxy"),
			want: "Required table 'proxy' is missing | Field: proxy | Rule: required",
		},
		{
			name: "max violation",
			err:  NewMaxViolation("proxy.port", int64(70000), int64(65535)),
			want: "Value 70000 at 'proxy.port' exceeds maximum 65535 | Field: proxy.port | Rule: max | Actual: 70000 | Expected: 65535",
		},
		{
			name: "enum renders list as json",
			err:  NewEnumViolation("logging.log_level", "verbose", []any{"info", "warn"}),
			want: `Invalid value 'verbose' for 'logging.log_level'. Allowed values: info, warn | Field: logging.log_level | Rule: enum | Actual: verbose | Expected: ["info","warn"]`,
		},
		{
			name: "conditional required",
			err:  NewMissingRequired("network.default.interface", "enable_wireguard == true"),
			want: "Required field 'network.default.interface' is missing (required when: enable_wireguard == true) | Field: network.default.interface | Rule: required | Expected: enable_wireguard == true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Format(); got != tt.want {
				t.Errorf("Format() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestNewTypeMismatch(t *testing.T) {
	err := NewTypeMismatch("proxy.id", "string", "integer")

	if err.FieldPath != "proxy.id" {
		t.Errorf("FieldPath = %q, want %q", err.FieldPath, "proxy.id")
	}
	if err.Rule != RuleType {
		t.Errorf("Rule = %q, want %q", err.Rule, RuleType)
	}
	if err.Actual != "integer" {
		t.Errorf("Actual = %v, want integer", err.Actual)
	}
	if !strings.Contains(err.Message, "string") {
		t.Errorf("Message = %q, should mention expected type", err.Message)
	}
}

func TestNewMissingRequired(t *testing.T) {
	t.Run("without condition", func(t *testing.T) {
		err := NewMissingRequired("proxy.id", "")
		if err.Rule != RuleRequired {
			t.Errorf("Rule = %q, want %q", err.Rule, RuleRequired)
		}
		if !strings.Contains(err.Message, "missing") {
			t.Errorf("Message = %q, should contain 'missing'", err.Message)
		}
		if err.Expected != nil {
			t.Errorf("Expected = %v, want nil", err.Expected)
		}
	})

	t.Run("with condition", func(t *testing.T) {
		err := NewMissingRequired("network.default.interface", "enable_wireguard == true")
		if !strings.Contains(err.Message, "enable_wireguard == true") {
			t.Errorf("Message = %q, should contain condition", err.Message)
		}
		if err.Expected != "enable_wireguard == true" {
			t.Errorf("Expected = %v, want condition text", err.Expected)
		}
	})
}

func TestConstraintViolations(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		rule     string
		actual   any
		expected any
	}{
		{"min", NewMinViolation("proxy.jwks_cache_duration_hours", int64(0), int64(1)), RuleMin, int64(0), int64(1)},
		{"max", NewMaxViolation("proxy.jwks_cache_duration_hours", int64(200), int64(168)), RuleMax, int64(200), int64(168)},
		{"min_items", NewMinItemsViolation("pipelines.default.endpoints", 0, 1), RuleMinItems, 0, int64(1)},
		{"max_items", NewMaxItemsViolation("pipelines.default.endpoints", 5, 3), RuleMaxItems, 5, int64(3)},
		{"pattern", NewPatternViolation("proxy.id", "bad id", "^[a-z-]+$"), RulePattern, "bad id", "^[a-z-]+$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != KindConstraintViolation {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, KindConstraintViolation)
			}
			if tt.err.Rule != tt.rule {
				t.Errorf("Rule = %q, want %q", tt.err.Rule, tt.rule)
			}
			if tt.err.Actual != tt.actual {
				t.Errorf("Actual = %#v, want %#v", tt.err.Actual, tt.actual)
			}
			if tt.err.Expected != tt.expected {
				t.Errorf("Expected = %#v, want %#v", tt.err.Expected, tt.expected)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewMaxViolation("a.b", int64(3), int64(2)))

	if !stderrors.Is(err, ErrConstraintViolation) {
		t.Error("errors.Is(err, ErrConstraintViolation) = false, want true")
	}
	if !stderrors.Is(err, ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false, want true")
	}
	if stderrors.Is(err, ErrTypeMismatch) {
		t.Error("errors.Is(err, ErrTypeMismatch) = true, want false")
	}

	var verr *ValidationError
	if !stderrors.As(err, &verr) {
		t.Fatal("errors.As failed")
	}
	if verr.FieldPath != "a.b" {
		t.Errorf("FieldPath = %q, want a.b", verr.FieldPath)
	}
}

func TestSchemaLoadError(t *testing.T) {
	cause := stderrors.New("no such file")
	err := NewSchemaLoadError("Schema file not found: /tmp/x.toml", "/tmp/x.toml", cause)

	if err.SchemaPath != "/tmp/x.toml" {
		t.Errorf("SchemaPath = %q", err.SchemaPath)
	}
	if !stderrors.Is(err, cause) {
		t.Error("SchemaLoadError should unwrap to its cause")
	}
}

func TestSuggestKey(t *testing.T) {
	tests := []struct {
		missing    string
		candidates []string
		want       string
	}{
		{"interface", []string{"interfce", "mtu"}, "Did you mean 'interfce'?"},
		{"listen_address", []string{"listen_adress"}, "Did you mean 'listen_adress'?"},
		{"id", []string{"completely_different"}, ""},
		{"id", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.missing, func(t *testing.T) {
			if got := SuggestKey(tt.missing, tt.candidates); got != tt.want {
				t.Errorf("SuggestKey(%q) = %q, want %q", tt.missing, got, tt.want)
			}
		})
	}
}
