package schema

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	equalsPattern = regexp.MustCompile(`^(\w+)\s*==\s*(.+)$`)
	existsPattern = regexp.MustCompile(`^(\w+)\s+exists$`)
)

// Condition is a parsed required_if expression, evaluated against the
// flat field values of the enclosing table.
type Condition interface {
	// Evaluate reports whether the condition holds for the sibling values.
	Evaluate(values map[string]any) bool

	// String returns the original expression text.
	String() string
}

// EqualsCondition is `<field> == <literal>`.
type EqualsCondition struct {
	Field   string
	Literal string // surrounding quotes removed

	source string
}

// Evaluate compares the sibling value against the literal. The literals
// true and false only equal the matching boolean; any other literal is
// compared against the stringified value.
func (c *EqualsCondition) Evaluate(values map[string]any) bool {
	actual, ok := values[c.Field]
	if !ok || actual == nil {
		return false
	}

	switch c.Literal {
	case "true":
		return actual == true
	case "false":
		return actual == false
	}

	s, ok := stringify(actual)
	return ok && s == c.Literal
}

func (c *EqualsCondition) String() string { return c.source }

// ExistsCondition is `<field> exists`.
type ExistsCondition struct {
	Field string

	source string
}

// Evaluate reports whether the sibling key is present, regardless of value.
func (c *ExistsCondition) Evaluate(values map[string]any) bool {
	_, ok := values[c.Field]
	return ok
}

func (c *ExistsCondition) String() string { return c.source }

// unsupportedCondition is any other expression shape. It never holds.
type unsupportedCondition struct {
	source string
}

func (c *unsupportedCondition) Evaluate(map[string]any) bool { return false }
func (c *unsupportedCondition) String() string               { return c.source }

// ParseCondition parses a required_if expression. It never fails: an
// unrecognized expression yields a condition that always evaluates false.
func ParseCondition(expr string) Condition {
	trimmed := strings.TrimSpace(expr)

	if m := equalsPattern.FindStringSubmatch(trimmed); m != nil {
		return &EqualsCondition{
			Field:   m[1],
			Literal: strings.Trim(strings.TrimSpace(m[2]), `'"`),
			source:  expr,
		}
	}

	if m := existsPattern.FindStringSubmatch(trimmed); m != nil {
		return &ExistsCondition{Field: m[1], source: expr}
	}

	return &unsupportedCondition{source: expr}
}

// IsSupported returns false for expressions that can never hold.
func IsSupported(c Condition) bool {
	_, unsupported := c.(*unsupportedCondition)
	return !unsupported
}

// stringify renders scalar values for literal comparison.
func stringify(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return "", false
	}
}
