package schema

import (
	"errors"
	"fmt"
	"strings"

	"runbeam/harmony-validator/pkg/tomlschema/document"
	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
)

// Loader builds schema definitions from decoded trees, raw text or files.
type Loader struct {
	decoder *document.Decoder
}

// NewLoader creates a loader with a default document decoder.
func NewLoader() *Loader {
	return &Loader{decoder: document.NewDecoder()}
}

// WithDecoder replaces the document decoder, e.g. to change the size limit.
func (l *Loader) WithDecoder(d *document.Decoder) *Loader {
	l.decoder = d
	return l
}

// LoadFile reads, decodes and builds the schema at path.
// The format is selected from the file extension.
func (l *Loader) LoadFile(path string) (*Definition, error) {
	data, err := l.decoder.ReadFile(path)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return nil, schemaErrors.NewSchemaLoadError(fmt.Sprintf("Schema file not found: %s", path), path, err)
		}
		return nil, schemaErrors.NewSchemaLoadError(fmt.Sprintf("Cannot read schema file: %s", path), path, err)
	}
	return l.LoadBytes(data, path)
}

// LoadBytes decodes and builds a schema from raw text. path is only used to
// pick the format and to annotate errors; it may be empty.
func (l *Loader) LoadBytes(data []byte, path string) (*Definition, error) {
	format := document.DetectFormat(path)

	tree, err := l.decoder.Decode(data, format)
	if err != nil {
		var syntaxErr *document.SyntaxError
		if errors.As(err, &syntaxErr) {
			message := fmt.Sprintf("Invalid %s in schema: %s", strings.ToUpper(string(syntaxErr.Format)), syntaxErr.Message)
			return nil, schemaErrors.NewSchemaLoadError(message, path, err)
		}
		return nil, schemaErrors.NewSchemaLoadError(fmt.Sprintf("Cannot read schema: %v", err), path, err)
	}

	def, err := l.Load(tree)
	if err != nil {
		var loadErr *schemaErrors.SchemaLoadError
		if errors.As(err, &loadErr) && loadErr.SchemaPath == "" {
			loadErr.SchemaPath = path
		}
		return nil, err
	}
	return def, nil
}

// Load builds a schema definition from a decoded tree.
//
// The tree must hold a "table" list. Constraint values are not checked
// against their own types here; unusable shapes are ignored at validation.
func (l *Loader) Load(tree map[string]any) (*Definition, error) {
	metadata, _ := tree["schema"].(map[string]any)
	if metadata == nil {
		metadata = map[string]any{}
	}

	tableList, ok := tree["table"].([]any)
	if !ok {
		return nil, schemaErrors.NewSchemaLoadError("Schema must contain [[table]] definitions", "", nil)
	}

	def := &Definition{
		Tables:   make([]*Table, 0, len(tableList)),
		Metadata: metadata,
	}

	for _, entry := range tableList {
		table, err := parseTable(entry)
		if err != nil {
			return nil, err
		}
		def.Tables = append(def.Tables, table)
	}

	return def, nil
}

func parseTable(entry any) (*Table, error) {
	tableData, _ := entry.(map[string]any)

	name, ok := tableData["name"].(string)
	if !ok {
		return nil, schemaErrors.NewSchemaLoadError(`Table definition must have a "name" field`, "", nil)
	}

	table := &Table{
		Name:     name,
		Required: boolValue(tableData["required"]),
		Pattern:  boolValue(tableData["pattern"]),
	}
	table.Description, _ = tableData["description"].(string)

	if constraint, ok := tableData["pattern_constraint"].(string); ok && constraint != "" {
		re, err := compileAnchored(constraint)
		if err != nil {
			return nil, schemaErrors.NewSchemaLoadError(
				fmt.Sprintf("Table %s has an invalid pattern_constraint: %v", name, err), "", err)
		}
		table.PatternConstraint = constraint
		table.constraintRe = re
	}

	if fieldList, ok := tableData["field"].([]any); ok {
		table.Fields = make([]*Field, 0, len(fieldList))
		for _, fieldEntry := range fieldList {
			field, err := parseField(fieldEntry)
			if err != nil {
				return nil, err
			}
			table.Fields = append(table.Fields, field)
		}
	}

	return table, nil
}

func parseField(entry any) (*Field, error) {
	fieldData, _ := entry.(map[string]any)

	name, ok := fieldData["name"].(string)
	if !ok {
		return nil, schemaErrors.NewSchemaLoadError(`Field definition must have a "name" field`, "", nil)
	}

	fieldType, ok := fieldData["type"].(string)
	if !ok {
		return nil, schemaErrors.NewSchemaLoadError(fmt.Sprintf(`Field %s must have a "type" field`, name), "", nil)
	}

	field := &Field{
		Name:     name,
		Type:     FieldType(fieldType),
		Required: boolValue(fieldData["required"]),
		Default:  fieldData["default"],
	}

	if expr, ok := fieldData["required_if"].(string); ok {
		field.RequiredIf = ParseCondition(expr)
	}

	field.Constraints, field.RawConstraints = buildConstraints(fieldData, field.Type)

	return field, nil
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}
