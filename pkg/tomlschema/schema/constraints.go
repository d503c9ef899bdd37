package schema

import (
	"fmt"
	"regexp"
)

// Recognized constraint keys. Any other key in a field definition is ignored.
const (
	ConstraintEnum          = "enum"
	ConstraintMin           = "min"
	ConstraintMax           = "max"
	ConstraintMinItems      = "min_items"
	ConstraintMaxItems      = "max_items"
	ConstraintPattern       = "pattern"
	ConstraintArrayItemType = "array_item_type"
)

// ConstraintKeys lists the recognized constraint keys in extraction order.
var ConstraintKeys = []string{
	ConstraintEnum,
	ConstraintMin,
	ConstraintMax,
	ConstraintMinItems,
	ConstraintMaxItems,
	ConstraintPattern,
	ConstraintArrayItemType,
}

// Constraint is one well-shaped constraint variant of a field.
type Constraint interface {
	// Keys returns the schema keys this variant was built from.
	Keys() []string
	String() string
}

// Constraints holds at most one instance of each constraint variant.
// A nil slot means the constraint is absent or had an unusable shape.
type Constraints struct {
	Enum          *EnumConstraint
	Bounds        *BoundsConstraint
	ItemBounds    *ItemBoundsConstraint
	Pattern       *PatternConstraint
	ArrayItemType *ArrayItemTypeConstraint
}

// All returns the present variants in rule order.
func (c Constraints) All() []Constraint {
	var all []Constraint
	if c.Enum != nil {
		all = append(all, c.Enum)
	}
	if c.Bounds != nil {
		all = append(all, c.Bounds)
	}
	if c.ItemBounds != nil {
		all = append(all, c.ItemBounds)
	}
	if c.Pattern != nil {
		all = append(all, c.Pattern)
	}
	if c.ArrayItemType != nil {
		all = append(all, c.ArrayItemType)
	}
	return all
}

// IsEmpty returns true if no variant is present.
func (c Constraints) IsEmpty() bool {
	return len(c.All()) == 0
}

// EnumConstraint restricts a value to a fixed list, compared strictly.
type EnumConstraint struct {
	Values []any
}

func (c *EnumConstraint) Keys() []string { return []string{ConstraintEnum} }
func (c *EnumConstraint) String() string { return fmt.Sprintf("enum=%v", c.Values) }

// BoundsConstraint holds inclusive numeric bounds. Min and Max are nil,
// int64 or float64.
type BoundsConstraint struct {
	Min any
	Max any
}

func (c *BoundsConstraint) Keys() []string { return []string{ConstraintMin, ConstraintMax} }

func (c *BoundsConstraint) String() string {
	switch {
	case c.Min != nil && c.Max != nil:
		return fmt.Sprintf("min=%v max=%v", c.Min, c.Max)
	case c.Min != nil:
		return fmt.Sprintf("min=%v", c.Min)
	default:
		return fmt.Sprintf("max=%v", c.Max)
	}
}

// ItemBoundsConstraint holds inclusive array length bounds.
type ItemBoundsConstraint struct {
	Min *int64
	Max *int64
}

func (c *ItemBoundsConstraint) Keys() []string {
	return []string{ConstraintMinItems, ConstraintMaxItems}
}

func (c *ItemBoundsConstraint) String() string {
	switch {
	case c.Min != nil && c.Max != nil:
		return fmt.Sprintf("min_items=%d max_items=%d", *c.Min, *c.Max)
	case c.Min != nil:
		return fmt.Sprintf("min_items=%d", *c.Min)
	default:
		return fmt.Sprintf("max_items=%d", *c.Max)
	}
}

// PatternConstraint requires string values to match a regular expression.
// The match is unanchored.
type PatternConstraint struct {
	Source string

	re  *regexp.Regexp
	err error
}

// NewPatternConstraint compiles source. An invalid expression is kept and
// matches nothing; Err reports the compile error.
func NewPatternConstraint(source string) *PatternConstraint {
	re, err := regexp.Compile(source)
	return &PatternConstraint{Source: source, re: re, err: err}
}

// MatchString reports whether s matches the pattern.
func (c *PatternConstraint) MatchString(s string) bool {
	if c.re == nil {
		return false
	}
	return c.re.MatchString(s)
}

// Err returns the compile error of an invalid pattern, or nil.
func (c *PatternConstraint) Err() error {
	return c.err
}

func (c *PatternConstraint) Keys() []string { return []string{ConstraintPattern} }
func (c *PatternConstraint) String() string { return fmt.Sprintf("pattern=%s", c.Source) }

// ArrayItemTypeConstraint requires every array item to be of one kind.
type ArrayItemTypeConstraint struct {
	Type FieldType
}

func (c *ArrayItemTypeConstraint) Keys() []string { return []string{ConstraintArrayItemType} }
func (c *ArrayItemTypeConstraint) String() string { return fmt.Sprintf("array_item_type=%s", c.Type) }

// buildConstraints extracts the recognized keys from a field definition.
// Values with an unusable shape are kept in raw but produce no variant.
func buildConstraints(fieldData map[string]any, fieldType FieldType) (Constraints, map[string]any) {
	raw := make(map[string]any)
	for _, key := range ConstraintKeys {
		if v, ok := fieldData[key]; ok && v != nil {
			raw[key] = v
		}
	}

	var c Constraints

	if values, ok := raw[ConstraintEnum].([]any); ok {
		c.Enum = &EnumConstraint{Values: values}
	}

	min, hasMin := numeric(raw[ConstraintMin])
	max, hasMax := numeric(raw[ConstraintMax])
	if hasMin || hasMax {
		c.Bounds = &BoundsConstraint{}
		if hasMin {
			c.Bounds.Min = min
		}
		if hasMax {
			c.Bounds.Max = max
		}
	}

	minItems, hasMinItems := raw[ConstraintMinItems].(int64)
	maxItems, hasMaxItems := raw[ConstraintMaxItems].(int64)
	if hasMinItems || hasMaxItems {
		c.ItemBounds = &ItemBoundsConstraint{}
		if hasMinItems {
			c.ItemBounds.Min = &minItems
		}
		if hasMaxItems {
			c.ItemBounds.Max = &maxItems
		}
	}

	if pattern, ok := raw[ConstraintPattern].(string); ok {
		c.Pattern = NewPatternConstraint(pattern)
	}

	if itemType, ok := raw[ConstraintArrayItemType].(string); ok && fieldType == TypeArray {
		c.ArrayItemType = &ArrayItemTypeConstraint{Type: FieldType(itemType)}
	}

	return c, raw
}

// numeric returns v when it is an int64 or float64.
func numeric(v any) (any, bool) {
	switch v.(type) {
	case int64, float64:
		return v, true
	default:
		return nil, false
	}
}
