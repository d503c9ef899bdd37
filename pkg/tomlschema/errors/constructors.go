package errors

import (
	"fmt"
	"strings"
)

// NewValidationError creates a generic validation failure without rule context.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		Kind:    KindValidation,
		Message: message,
	}
}

// NewTypeMismatch creates a type failure. actualKind is the kind name of the offending value.
func NewTypeMismatch(fieldPath, expectedType, actualKind string) *ValidationError {
	return &ValidationError{
		Kind:      KindTypeMismatch,
		Message:   fmt.Sprintf("Type mismatch at '%s': expected %s, got %s", fieldPath, expectedType, actualKind),
		FieldPath: fieldPath,
		Rule:      RuleType,
		Actual:    actualKind,
		Expected:  expectedType,
	}
}

// NewUnknownType creates a type failure for a field declared with an unrecognized type.
func NewUnknownType(fieldPath, declaredType, actualKind string) *ValidationError {
	return &ValidationError{
		Kind:      KindTypeMismatch,
		Message:   fmt.Sprintf("Unknown type: %s", declaredType),
		FieldPath: fieldPath,
		Rule:      RuleType,
		Actual:    actualKind,
		Expected:  declaredType,
	}
}

// NewTableTypeMismatch creates a failure for a table instance that is not a mapping.
func NewTableTypeMismatch(tablePath, actualKind string) *ValidationError {
	return &ValidationError{
		Kind:      KindTypeMismatch,
		Message:   fmt.Sprintf("Table '%s' must be a table, got %s", tablePath, actualKind),
		FieldPath: tablePath,
		Rule:      RuleType,
		Actual:    actualKind,
		Expected:  "table",
	}
}

// NewMissingRequired creates a failure for an absent required field.
// condition is the required_if expression that triggered the requirement, or empty.
func NewMissingRequired(fieldPath, condition string) *ValidationError {
	message := fmt.Sprintf("Required field '%s' is missing", fieldPath)
	var expected any
	if condition != "" {
		message += fmt.Sprintf(" (required when: %s)", condition)
		expected = condition
	}

	return &ValidationError{
		Kind:      KindMissingRequired,
		Message:   message,
		FieldPath: fieldPath,
		Rule:      RuleRequired,
		Expected:  expected,
	}
}

// NewMissingTable creates a failure for an absent required table.
func NewMissingTable(tablePath string) *ValidationError {
	return &ValidationError{
		Kind:      KindMissingRequired,
		Message:   fmt.Sprintf("Required table '%s' is missing", tablePath),
		FieldPath: tablePath,
		Rule:      RuleRequired,
	}
}

// NewEnumViolation creates a failure for a value outside the allowed list.
func NewEnumViolation(fieldPath string, actual any, allowed []any) *ValidationError {
	values := make([]string, len(allowed))
	for i, a := range allowed {
		values[i] = FormatValue(a)
	}

	return &ValidationError{
		Kind:      KindConstraintViolation,
		Message:   fmt.Sprintf("Invalid value '%s' for '%s'. Allowed values: %s", FormatValue(actual), fieldPath, strings.Join(values, ", ")),
		FieldPath: fieldPath,
		Rule:      RuleEnum,
		Actual:    actual,
		Expected:  allowed,
	}
}

// NewMinViolation creates a failure for a numeric value below its inclusive minimum.
func NewMinViolation(fieldPath string, actual, min any) *ValidationError {
	return &ValidationError{
		Kind:      KindConstraintViolation,
		Message:   fmt.Sprintf("Value %v at '%s' is below minimum %v", actual, fieldPath, min),
		FieldPath: fieldPath,
		Rule:      RuleMin,
		Actual:    actual,
		Expected:  min,
	}
}

// NewMaxViolation creates a failure for a numeric value above its inclusive maximum.
func NewMaxViolation(fieldPath string, actual, max any) *ValidationError {
	return &ValidationError{
		Kind:      KindConstraintViolation,
		Message:   fmt.Sprintf("Value %v at '%s' exceeds maximum %v", actual, fieldPath, max),
		FieldPath: fieldPath,
		Rule:      RuleMax,
		Actual:    actual,
		Expected:  max,
	}
}

// NewMinItemsViolation creates a failure for an array with too few items.
func NewMinItemsViolation(fieldPath string, count int, minItems int64) *ValidationError {
	return &ValidationError{
		Kind:      KindConstraintViolation,
		Message:   fmt.Sprintf("Array at '%s' has %d items, minimum is %d", fieldPath, count, minItems),
		FieldPath: fieldPath,
		Rule:      RuleMinItems,
		Actual:    count,
		Expected:  minItems,
	}
}

// NewMaxItemsViolation creates a failure for an array with too many items.
func NewMaxItemsViolation(fieldPath string, count int, maxItems int64) *ValidationError {
	return &ValidationError{
		Kind:      KindConstraintViolation,
		Message:   fmt.Sprintf("Array at '%s' has %d items, maximum is %d", fieldPath, count, maxItems),
		FieldPath: fieldPath,
		Rule:      RuleMaxItems,
		Actual:    count,
		Expected:  maxItems,
	}
}

// NewPatternViolation creates a failure for a string that does not match its pattern.
func NewPatternViolation(fieldPath, actual, pattern string) *ValidationError {
	return &ValidationError{
		Kind:      KindConstraintViolation,
		Message:   fmt.Sprintf("Value '%s' at '%s' does not match pattern: %s", actual, fieldPath, pattern),
		FieldPath: fieldPath,
		Rule:      RulePattern,
		Actual:    actual,
		Expected:  pattern,
	}
}

// NewSchemaLoadError creates a schema load failure.
func NewSchemaLoadError(message, schemaPath string, cause error) *SchemaLoadError {
	return &SchemaLoadError{
		Message:    message,
		SchemaPath: schemaPath,
		Err:        cause,
	}
}
