package cli

import (
	"errors"
	"strings"

	"runbeam/harmony-validator/pkg/history"
	"runbeam/harmony-validator/pkg/telemetry/logging"
	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
	"runbeam/harmony-validator/pkg/tomlschema/schema"
)

// Failure kinds reported for errors that are not a ValidationError.
const (
	KindSchemaLoad = "schema_load"
	KindError      = "error"
)

// Result is the printable outcome of one validation run.
type Result struct {
	RunID      string   `json:"run_id,omitempty"`
	ConfigPath string   `json:"config_path,omitempty"`
	SchemaPath string   `json:"schema_path,omitempty"`
	Valid      bool     `json:"valid"`
	Failure    *Failure `json:"error,omitempty"`
}

// Failure describes why a run did not pass.
type Failure struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	FieldPath  string `json:"field_path,omitempty"`
	Rule       string `json:"rule,omitempty"`
	Actual     any    `json:"actual,omitempty"`
	Expected   any    `json:"expected,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`

	// Formatted is the single-line rendering of a validation error.
	Formatted string `json:"formatted,omitempty"`
}

// NewResult builds the printable result of a run that ended with err.
// When redactor is non-nil, sensitive actual values are masked in both
// the structured fields and the message.
func NewResult(runID, configPath, schemaPath string, err error, redactor *logging.Redactor) *Result {
	result := &Result{
		RunID:      runID,
		ConfigPath: configPath,
		SchemaPath: schemaPath,
		Valid:      err == nil,
	}
	if err == nil {
		return result
	}

	var verr *schemaErrors.ValidationError
	var loadErr *schemaErrors.SchemaLoadError
	switch {
	case errors.As(err, &verr):
		redacted := RedactValidationError(verr, redactor)
		result.Failure = &Failure{
			Kind:       string(redacted.Kind),
			Message:    redacted.Message,
			FieldPath:  redacted.FieldPath,
			Rule:       redacted.Rule,
			Actual:     redacted.Actual,
			Expected:   redacted.Expected,
			Suggestion: redacted.Suggestion,
			Formatted:  redacted.Format(),
		}
	case errors.As(err, &loadErr):
		result.Failure = &Failure{Kind: KindSchemaLoad, Message: loadErr.Message}
		if loadErr.SchemaPath != "" {
			result.SchemaPath = loadErr.SchemaPath
		}
	default:
		result.Failure = &Failure{Kind: KindError, Message: err.Error()}
	}

	return result
}

// RedactValidationError returns a copy of verr with its actual value
// masked. Occurrences of the original value in the message are replaced
// as well. Only rules that echo the configured value are redacted; a nil
// redactor returns verr unchanged.
func RedactValidationError(verr *schemaErrors.ValidationError, redactor *logging.Redactor) *schemaErrors.ValidationError {
	if redactor == nil || verr.Actual == nil || !echoesValue(verr.Rule) {
		return verr
	}

	cp := *verr
	cp.Actual = redactor.RedactField(verr.FieldPath, verr.Actual)

	original := schemaErrors.FormatValue(verr.Actual)
	masked := schemaErrors.FormatValue(cp.Actual)
	if original != "" && original != masked {
		cp.Message = strings.ReplaceAll(cp.Message, original, masked)
	}
	return &cp
}

// echoesValue reports whether a rule puts the offending value itself in
// Actual. Type and item-count rules report a kind name or a length.
func echoesValue(rule string) bool {
	switch rule {
	case schemaErrors.RuleEnum, schemaErrors.RuleMin, schemaErrors.RuleMax, schemaErrors.RulePattern:
		return true
	default:
		return false
	}
}

// SchemaSummary is the printable structure of a loaded schema.
type SchemaSummary struct {
	Path        string         `json:"path"`
	Version     string         `json:"version,omitempty"`
	Description string         `json:"description,omitempty"`
	FieldCount  int            `json:"field_count"`
	Tables      []TableSummary `json:"tables"`
}

// TableSummary describes one schema table.
type TableSummary struct {
	Name              string         `json:"name"`
	Required          bool           `json:"required,omitempty"`
	Pattern           bool           `json:"pattern,omitempty"`
	PatternConstraint string         `json:"pattern_constraint,omitempty"`
	Description       string         `json:"description,omitempty"`
	Fields            []FieldSummary `json:"fields"`
}

// FieldSummary describes one schema field.
type FieldSummary struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required,omitempty"`
	RequiredIf  string   `json:"required_if,omitempty"`
	Constraints []string `json:"constraints,omitempty"`
}

// NewSchemaSummary summarizes def, loaded from path.
func NewSchemaSummary(path string, def *schema.Definition) *SchemaSummary {
	summary := &SchemaSummary{
		Path:        path,
		Version:     def.Version(),
		Description: def.Description(),
		FieldCount:  def.FieldCount(),
		Tables:      make([]TableSummary, 0, len(def.Tables)),
	}

	for _, table := range def.Tables {
		ts := TableSummary{
			Name:              table.Name,
			Required:          table.Required,
			Pattern:           table.IsPattern(),
			PatternConstraint: table.PatternConstraint,
			Description:       table.Description,
			Fields:            make([]FieldSummary, 0, len(table.Fields)),
		}
		for _, field := range table.Fields {
			fs := FieldSummary{
				Name:     field.Name,
				Type:     string(field.Type),
				Required: field.Required,
			}
			if field.RequiredIf != nil {
				fs.RequiredIf = field.RequiredIf.String()
			}
			for _, c := range field.Constraints.All() {
				fs.Constraints = append(fs.Constraints, c.String())
			}
			ts.Fields = append(ts.Fields, fs)
		}
		summary.Tables = append(summary.Tables, ts)
	}

	return summary
}

// RunList is a page of recorded runs. Total counts every run matching the
// query, not only the ones listed.
type RunList struct {
	Total int64          `json:"total"`
	Runs  []*history.Run `json:"runs"`
}
