package rules

import (
	"reflect"

	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
	"runbeam/harmony-validator/pkg/tomlschema/schema"
)

// Context is the part of the traversal state a rule can see.
type Context interface {
	// FieldPath returns the dotted path of the value being checked.
	FieldPath() string

	// Siblings returns the flat values of the enclosing table.
	Siblings() map[string]any
}

// Rule checks one aspect of a field value. A rule that does not apply to
// the value or field passes silently.
type Rule interface {
	Name() string
	Check(value any, field *schema.Field, ctx Context) *schemaErrors.ValidationError
}

// Set is an ordered list of rules. Check stops at the first failure.
type Set []Rule

// DefaultSet returns the rules in their fixed order:
// Type, Required, Enum, NumericBounds, Array, Pattern.
func DefaultSet() Set {
	return Set{
		Type{},
		Required{},
		Enum{},
		NumericBounds{},
		Array{},
		Pattern{},
	}
}

// Check runs the rules in order and returns the first failure.
func (s Set) Check(value any, field *schema.Field, ctx Context) *schemaErrors.ValidationError {
	for _, rule := range s {
		if err := rule.Check(value, field, ctx); err != nil {
			return err
		}
	}
	return nil
}

// Type checks the value's kind against the declared field type.
type Type struct{}

func (Type) Name() string { return schemaErrors.RuleType }

func (Type) Check(value any, field *schema.Field, ctx Context) *schemaErrors.ValidationError {
	matched, known := MatchesType(value, field.Type)
	if !known {
		return schemaErrors.NewUnknownType(ctx.FieldPath(), string(field.Type), KindOf(value))
	}
	if !matched {
		return schemaErrors.NewTypeMismatch(ctx.FieldPath(), string(field.Type), KindOf(value))
	}
	return nil
}

// Enum requires the value to be a strict member of the allowed list.
// No coercion happens: the string "1" is not a member of [1, 2, 3] and
// neither is 1.0. Integers of any Go width compare by value.
type Enum struct{}

func (Enum) Name() string { return schemaErrors.RuleEnum }

func (Enum) Check(value any, field *schema.Field, ctx Context) *schemaErrors.ValidationError {
	enum := field.Constraints.Enum
	if enum == nil {
		return nil
	}

	for _, allowed := range enum.Values {
		if enumEqual(value, allowed) {
			return nil
		}
	}
	return schemaErrors.NewEnumViolation(ctx.FieldPath(), value, enum.Values)
}

// enumEqual compares numbers by value within the same kind and everything
// else with DeepEqual.
func enumEqual(value, allowed any) bool {
	a, aok := toNumber(value)
	b, bok := toNumber(allowed)
	if aok && bok {
		return a.isInt == b.isInt && a.compare(b) == 0
	}
	return reflect.DeepEqual(value, allowed)
}

// NumericBounds checks inclusive min/max bounds on integer and float values.
type NumericBounds struct{}

func (NumericBounds) Name() string { return "bounds" }

func (NumericBounds) Check(value any, field *schema.Field, ctx Context) *schemaErrors.ValidationError {
	bounds := field.Constraints.Bounds
	if bounds == nil {
		return nil
	}

	n, ok := toNumber(value)
	if !ok {
		return nil
	}

	if min, ok := toNumber(bounds.Min); ok && n.compare(min) < 0 {
		return schemaErrors.NewMinViolation(ctx.FieldPath(), value, bounds.Min)
	}
	if max, ok := toNumber(bounds.Max); ok && n.compare(max) > 0 {
		return schemaErrors.NewMaxViolation(ctx.FieldPath(), value, bounds.Max)
	}
	return nil
}

// Array checks item counts and item kinds of array fields.
// Counts are checked before item kinds.
type Array struct{}

func (Array) Name() string { return "array" }

func (Array) Check(value any, field *schema.Field, ctx Context) *schemaErrors.ValidationError {
	if field.Type != schema.TypeArray {
		return nil
	}

	items, ok := value.([]any)
	if !ok {
		return nil
	}

	path := ctx.FieldPath()
	count := len(items)

	if bounds := field.Constraints.ItemBounds; bounds != nil {
		if bounds.Min != nil && int64(count) < *bounds.Min {
			return schemaErrors.NewMinItemsViolation(path, count, *bounds.Min)
		}
		if bounds.Max != nil && int64(count) > *bounds.Max {
			return schemaErrors.NewMaxItemsViolation(path, count, *bounds.Max)
		}
	}

	if itemType := field.Constraints.ArrayItemType; itemType != nil {
		for i, item := range items {
			// Unknown item types accept anything.
			if matched, known := MatchesType(item, itemType.Type); known && !matched {
				return schemaErrors.NewTypeMismatch(ItemPath(path, i), string(itemType.Type), KindOf(item))
			}
		}
	}

	return nil
}

// Pattern requires string values to match the field's regular expression.
type Pattern struct{}

func (Pattern) Name() string { return schemaErrors.RulePattern }

func (Pattern) Check(value any, field *schema.Field, ctx Context) *schemaErrors.ValidationError {
	pattern := field.Constraints.Pattern
	if pattern == nil {
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return nil
	}

	if !pattern.MatchString(s) {
		return schemaErrors.NewPatternViolation(ctx.FieldPath(), s, pattern.Source)
	}
	return nil
}
