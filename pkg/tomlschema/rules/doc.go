// Package rules implements the checks applied to a single field value.
//
// Each rule is permissive when it does not apply: Enum passes without an
// enum constraint, NumericBounds ignores non-numeric values, Array ignores
// fields not declared as arrays, and Pattern ignores non-string values.
package rules
