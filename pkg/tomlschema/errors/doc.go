// Package errors provides the structured error types produced by schema loading
// and configuration validation.
//
// Validation is fail-fast: a run returns at most one *ValidationError, built at
// the point where a rule fails. The error carries the dotted field path, the rule
// name, the offending value and the expected constraint.
//
// # Error Kinds
//
// KindValidation: generic failure (unreadable config, invalid syntax)
//
// KindTypeMismatch: runtime kind does not match the declared type
//
// KindMissingRequired: required field or table is absent
//
// KindConstraintViolation: enum, min, max, min_items, max_items or pattern violation
//
// Schema documents that cannot be loaded produce a *SchemaLoadError instead.
//
// # Basic Usage
//
//	err := tomlschema.Validate(config, def)
//	var verr *errors.ValidationError
//	if stderrors.As(err, &verr) {
//	    fmt.Println(verr.Format())
//	}
//
//	if stderrors.Is(err, errors.ErrConstraintViolation) {
//	    // enum/min/max/... violation
//	}
//
// # Formatting
//
// Format joins the message, "Field: <path>", "Rule: <name>", "Actual: <value>"
// and "Expected: <constraint>" with " | ", skipping empty parts. Non-scalar values
// are rendered as JSON.
package errors
