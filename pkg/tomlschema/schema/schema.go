package schema

import (
	"regexp"
	"strings"
)

// FieldType is the declared type of a schema field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeFloat   FieldType = "float"
	TypeArray   FieldType = "array"
	TypeTable   FieldType = "table"
)

// IsKnown returns true if t is one of the recognized field types.
func (t FieldType) IsKnown() bool {
	switch t {
	case TypeString, TypeInteger, TypeBoolean, TypeFloat, TypeArray, TypeTable:
		return true
	default:
		return false
	}
}

// Definition is the immutable in-memory form of a schema document.
// It is safe to share between concurrent validation runs.
type Definition struct {
	Tables   []*Table       // Tables in definition order (not deduplicated)
	Metadata map[string]any // Contents of the [schema] section
}

// Version returns the schema version from metadata, or an empty string.
func (d *Definition) Version() string {
	v, _ := d.Metadata["version"].(string)
	return v
}

// Description returns the schema description from metadata, or an empty string.
func (d *Definition) Description() string {
	v, _ := d.Metadata["description"].(string)
	return v
}

// Table returns the first fixed (non-pattern) table named name, or nil.
func (d *Definition) Table(name string) *Table {
	for _, table := range d.Tables {
		if table.Name == name && !table.IsPattern() {
			return table
		}
	}
	return nil
}

// TablesMatching returns every table whose Matches accepts instanceName,
// in definition order.
func (d *Definition) TablesMatching(instanceName string) []*Table {
	var matching []*Table
	for _, table := range d.Tables {
		if table.Matches(instanceName) {
			matching = append(matching, table)
		}
	}
	return matching
}

// FieldCount returns the total number of fields across all tables.
func (d *Definition) FieldCount() int {
	count := 0
	for _, table := range d.Tables {
		count += len(table.Fields)
	}
	return count
}

// Table describes a configuration table.
//
// A fixed table is matched by exact name. A pattern table (Pattern=true,
// name conventionally ending in ".*") is matched by its base name prefix and,
// when PatternConstraint is set, by a full regex match on the remainder.
type Table struct {
	Name              string
	Fields            []*Field
	Required          bool
	Pattern           bool
	PatternConstraint string
	Description       string

	constraintRe *regexp.Regexp
}

// IsPattern returns true for pattern (wildcard) tables.
func (t *Table) IsPattern() bool {
	return t.Pattern
}

// BaseName returns the name with the trailing wildcard marker removed.
// Fixed tables return their name unchanged.
func (t *Table) BaseName() string {
	if !t.IsPattern() {
		return t.Name
	}
	return strings.TrimRight(t.Name, ".*")
}

// Field returns the field named name, or nil.
func (t *Table) Field(name string) *Field {
	for _, field := range t.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Matches reports whether a configuration table named instanceName is an
// instance of this table. The bare base name never matches a pattern table.
func (t *Table) Matches(instanceName string) bool {
	if !t.IsPattern() {
		return t.Name == instanceName
	}

	prefix := t.BaseName() + "."
	if !strings.HasPrefix(instanceName, prefix) {
		return false
	}

	if t.PatternConstraint == "" {
		return true
	}

	re := t.constraintRe
	if re == nil {
		// Tables built outside the loader are compiled on demand.
		compiled, err := compileAnchored(t.PatternConstraint)
		if err != nil {
			return false
		}
		re = compiled
	}
	return re.MatchString(strings.TrimPrefix(instanceName, prefix))
}

// compileAnchored compiles pattern so that it must match the whole input.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

// Field describes a single configuration key within a table.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	RequiredIf  Condition // nil when required_if is unset
	Default     any       // informational only, never applied
	Constraints Constraints

	// RawConstraints holds the recognized constraint keys exactly as written.
	RawConstraints map[string]any
}

// HasConstraint returns true if the raw constraint key was present in the schema.
func (f *Field) HasConstraint(name string) bool {
	_, ok := f.RawConstraints[name]
	return ok
}
