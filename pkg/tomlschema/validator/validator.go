package validator

import (
	"errors"
	"strings"

	"runbeam/harmony-validator/pkg/tomlschema/document"
	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
	"runbeam/harmony-validator/pkg/tomlschema/rules"
	"runbeam/harmony-validator/pkg/tomlschema/schema"
)

// ErrNoSchema is returned when Validate is called without a schema.
var ErrNoSchema = errors.New("no schema definition")

// Validator walks a configuration tree against a schema definition.
//
// Validation is fail-fast: the first failing check ends the run and is
// returned as a *errors.ValidationError. A Validator holds no per-run
// state and may be used from several goroutines.
type Validator struct {
	rules    rules.Set
	required rules.Rule
}

// NewValidator creates a validator with the default rule order.
func NewValidator() *Validator {
	return &Validator{
		rules:    rules.DefaultSet(),
		required: rules.Required{},
	}
}

// Validate checks config against def and returns the first violation, or nil.
//
// Tables are visited in definition order. Fixed tables are looked up by
// name; pattern tables are matched against every mapping whose name fits
// the pattern, in sorted name order.
func (v *Validator) Validate(config map[string]any, def *schema.Definition) error {
	if def == nil {
		return ErrNoSchema
	}
	if config == nil {
		config = map[string]any{}
	}

	ctx := NewContext()
	for _, table := range def.Tables {
		var err error
		if table.IsPattern() {
			err = v.validatePatternTable(config, table, ctx)
		} else {
			err = v.validateFixedTable(config, table, ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateFixedTable(config map[string]any, table *schema.Table, ctx *Context) error {
	value, ok := ResolveTable(config, table.Name)
	if !ok {
		if table.Required {
			return schemaErrors.NewMissingTable(table.Name)
		}
		return nil
	}

	return ctx.WithPath(table.Name, func() error {
		return v.validateInstance(value, table, ctx)
	})
}

func (v *Validator) validatePatternTable(config map[string]any, table *schema.Table, ctx *Context) error {
	instances := PatternInstances(config, table)
	for _, name := range document.SortedKeys(instances) {
		err := ctx.WithPath(name, func() error {
			return v.validateInstance(instances[name], table, ctx)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateInstance(value any, table *schema.Table, ctx *Context) error {
	values, ok := value.(map[string]any)
	if !ok {
		return schemaErrors.NewTableTypeMismatch(ctx.FieldPath(), rules.KindOf(value))
	}

	return ctx.withSiblings(values, func() error {
		for _, field := range table.Fields {
			err := ctx.WithPath(field.Name, func() error {
				return v.validateField(values, field, table, ctx)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (v *Validator) validateField(values map[string]any, field *schema.Field, table *schema.Table, ctx *Context) error {
	value, present := values[field.Name]

	if !present || value == nil {
		if verr := v.required.Check(nil, field, ctx); verr != nil {
			return withSuggestion(verr, values, table)
		}
		return nil
	}

	if verr := v.rules.Check(value, field, ctx); verr != nil {
		return verr
	}
	return nil
}

// withSuggestion attaches a "did you mean" hint naming an undeclared key
// of the table instance that is close to the missing field name.
func withSuggestion(verr *schemaErrors.ValidationError, values map[string]any, table *schema.Table) *schemaErrors.ValidationError {
	var undeclared []string
	for key := range values {
		if table.Field(key) == nil {
			undeclared = append(undeclared, key)
		}
	}

	name := verr.FieldPath[strings.LastIndex(verr.FieldPath, ".")+1:]
	if suggestion := schemaErrors.SuggestKey(name, undeclared); suggestion != "" {
		return verr.WithSuggestion(suggestion)
	}
	return verr
}

// ResolveTable finds the value of a table named name. A literal key wins;
// otherwise a dotted name is followed through nested mappings, so
// "network.default" also finds [network.default] written as a TOML
// sub-table. Null values count as absent.
func ResolveTable(config map[string]any, name string) (any, bool) {
	if value, ok := config[name]; ok && value != nil {
		return value, true
	}
	if !strings.Contains(name, ".") {
		return nil, false
	}

	var current any = config
	for _, segment := range strings.Split(name, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// PatternInstances returns the mappings that are instances of a pattern
// table, keyed by instance name. Candidates are the top-level keys and the
// children of the mapping found at the table's base name. A literal
// top-level key takes precedence over a nested child of the same name.
func PatternInstances(config map[string]any, table *schema.Table) map[string]any {
	instances := make(map[string]any)

	base := table.BaseName()
	if node, ok := ResolveTable(config, base); ok {
		if children, ok := node.(map[string]any); ok {
			for child, value := range children {
				name := base + "." + child
				if _, isTable := value.(map[string]any); isTable && table.Matches(name) {
					instances[name] = value
				}
			}
		}
	}

	for key, value := range config {
		if _, isTable := value.(map[string]any); isTable && table.Matches(key) {
			instances[key] = value
		}
	}

	return instances
}
