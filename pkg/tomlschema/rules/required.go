package rules

import (
	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
	"runbeam/harmony-validator/pkg/tomlschema/schema"
)

// Required fails when a required field is missing. Null and the empty
// string count as missing.
//
// When the field has a required_if condition, the condition alone decides
// whether the field is required; the plain required flag is then ignored.
type Required struct{}

func (Required) Name() string { return schemaErrors.RuleRequired }

func (Required) Check(value any, field *schema.Field, ctx Context) *schemaErrors.ValidationError {
	if !IsMissing(value) {
		return nil
	}

	if field.RequiredIf != nil {
		if !field.RequiredIf.Evaluate(ctx.Siblings()) {
			return nil
		}
		return schemaErrors.NewMissingRequired(ctx.FieldPath(), field.RequiredIf.String())
	}

	if field.Required {
		return schemaErrors.NewMissingRequired(ctx.FieldPath(), "")
	}
	return nil
}

// IsMissing reports whether a value counts as absent.
func IsMissing(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}
