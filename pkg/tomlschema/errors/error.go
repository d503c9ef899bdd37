package errors

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Kind categorizes a validation failure.
type Kind string

const (
	KindValidation          Kind = "validation"           // Structural or I/O failure (missing table, unreadable config)
	KindTypeMismatch        Kind = "type_mismatch"        // Runtime kind does not match the declared type
	KindMissingRequired     Kind = "missing_required"     // Required field or table is absent
	KindConstraintViolation Kind = "constraint_violation" // enum, min, max, min_items, max_items, pattern
)

// Rule names reported in ValidationError.Rule.
const (
	RuleType     = "type"
	RuleRequired = "required"
	RuleEnum     = "enum"
	RuleMin      = "min"
	RuleMax      = "max"
	RuleMinItems = "min_items"
	RuleMaxItems = "max_items"
	RulePattern  = "pattern"
)

// Sentinel errors for errors.Is matching against a ValidationError kind.
var (
	ErrValidation          = &sentinel{kind: KindValidation}
	ErrTypeMismatch        = &sentinel{kind: KindTypeMismatch}
	ErrMissingRequired     = &sentinel{kind: KindMissingRequired}
	ErrConstraintViolation = &sentinel{kind: KindConstraintViolation}
)

type sentinel struct {
	kind Kind
}

func (s *sentinel) Error() string {
	return string(s.kind)
}

// ValidationError is the single structured failure produced by a validation run.
// It is constructed where a rule fails and never mutated afterwards.
type ValidationError struct {
	Kind       Kind   // Category of failure
	Message    string // Human-readable message
	FieldPath  string // Dotted path of the failing value (may be empty)
	Rule       string // Rule name (may be empty)
	Actual     any    // Offending value, nil when not applicable
	Expected   any    // Expected constraint, nil when not applicable
	Suggestion string // Optional hint, not part of Format()
}

// Error implements the error interface. It returns the message only;
// use Format for the full rendering.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is the sentinel for this error's kind.
// Every ValidationError also matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	s, ok := target.(*sentinel)
	if !ok {
		return false
	}
	return s.kind == e.Kind || s.kind == KindValidation
}

// Format renders the error as "message | Field: ... | Rule: ... | Actual: ... | Expected: ...",
// omitting empty parts.
func (e *ValidationError) Format() string {
	parts := []string{e.Message}

	if e.FieldPath != "" {
		parts = append(parts, "Field: "+e.FieldPath)
	}
	if e.Rule != "" {
		parts = append(parts, "Rule: "+e.Rule)
	}
	if e.Actual != nil {
		parts = append(parts, "Actual: "+FormatValue(e.Actual))
	}
	if e.Expected != nil {
		parts = append(parts, "Expected: "+FormatValue(e.Expected))
	}

	return strings.Join(parts, " | ")
}

// HasSuggestion returns true if the error carries a suggestion.
func (e *ValidationError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// WithSuggestion returns a copy of the error carrying the given suggestion.
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	cp := *e
	cp.Suggestion = suggestion
	return &cp
}

// FormatValue renders scalars verbatim and everything else as JSON.
func FormatValue(v any) string {
	if v == nil {
		return "null"
	}
	if isScalar(v) {
		return fmt.Sprintf("%v", v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func isScalar(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Pointer:
		return false
	default:
		return true
	}
}

// SchemaLoadError reports a malformed or unreadable schema document.
type SchemaLoadError struct {
	Message    string // Human-readable message
	SchemaPath string // Source path, empty for in-memory schemas
	Err        error  // Underlying cause, if any
}

// Error implements the error interface.
func (e *SchemaLoadError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *SchemaLoadError) Unwrap() error {
	return e.Err
}
