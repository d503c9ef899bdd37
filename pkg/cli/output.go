package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is human-readable text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat parses a format name. An empty name is FormatText.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch OutputFormat(name) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (expected text or json)", name)
	}
}

// Formatter formats command output.
type Formatter interface {
	Format(data any) ([]byte, error)
	FormatTo(w io.Writer, data any) error
}

// TextFormatter renders validation results, schema summaries and run
// listings as text. Any other value is printed with %v.
type TextFormatter struct{}

// Format converts data to text format.
func (f *TextFormatter) Format(data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.FormatTo(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatTo writes data to w in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case *Result:
		return writeResult(w, v)
	case *SchemaSummary:
		return writeSchemaSummary(w, v)
	case *RunList:
		return writeRunList(w, v)
	default:
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// Format converts data to JSON format.
func (f *JSONFormatter) Format(data any) ([]byte, error) {
	if f.Indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// FormatTo writes data to w in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &TextFormatter{}
	}
}

func writeResult(w io.Writer, r *Result) error {
	subject := r.ConfigPath
	if subject == "" {
		subject = "Schema " + r.SchemaPath
	}

	var buf bytes.Buffer
	switch {
	case r.Valid:
		fmt.Fprintf(&buf, "✓ %s is valid\n", subject)
		if r.ConfigPath != "" && r.SchemaPath != "" {
			fmt.Fprintf(&buf, "  Schema: %s\n", r.SchemaPath)
		}
	case r.Failure == nil:
		fmt.Fprintf(&buf, "✗ %s failed\n", subject)
	case r.Failure.Kind == KindSchemaLoad:
		fmt.Fprintf(&buf, "✗ Schema could not be loaded: %s\n", r.SchemaPath)
		fmt.Fprintf(&buf, "  %s\n", r.Failure.Message)
	case r.Failure.Kind == KindError:
		fmt.Fprintf(&buf, "✗ %s could not be validated\n", subject)
		fmt.Fprintf(&buf, "  %s\n", r.Failure.Message)
	default:
		fmt.Fprintf(&buf, "✗ %s is invalid\n", subject)
		fmt.Fprintf(&buf, "  %s\n", r.Failure.Formatted)
		if r.Failure.Suggestion != "" {
			fmt.Fprintf(&buf, "  Suggestion: %s\n", r.Failure.Suggestion)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeSchemaSummary(w io.Writer, s *SchemaSummary) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Schema: %s\n", s.Path)
	if s.Version != "" {
		fmt.Fprintf(&buf, "Version: %s\n", s.Version)
	}
	if s.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", s.Description)
	}
	fmt.Fprintf(&buf, "Tables: %d, Fields: %d\n", len(s.Tables), s.FieldCount)

	for _, table := range s.Tables {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "[%s]", table.Name)
		var flags []string
		if table.Required {
			flags = append(flags, "required")
		}
		if table.Pattern {
			flags = append(flags, "pattern")
		}
		if table.PatternConstraint != "" {
			flags = append(flags, "constraint="+table.PatternConstraint)
		}
		writeFlags(&buf, flags)
		buf.WriteString("\n")
		if table.Description != "" {
			fmt.Fprintf(&buf, "  %s\n", table.Description)
		}

		for _, field := range table.Fields {
			fmt.Fprintf(&buf, "  %s: %s", field.Name, field.Type)
			var fieldFlags []string
			if field.Required {
				fieldFlags = append(fieldFlags, "required")
			}
			if field.RequiredIf != "" {
				fieldFlags = append(fieldFlags, "required_if="+field.RequiredIf)
			}
			fieldFlags = append(fieldFlags, field.Constraints...)
			writeFlags(&buf, fieldFlags)
			buf.WriteString("\n")
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeFlags(buf *bytes.Buffer, flags []string) {
	if len(flags) == 0 {
		return
	}
	buf.WriteString(" (")
	for i, flag := range flags {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(flag)
	}
	buf.WriteString(")")
}

func writeRunList(w io.Writer, l *RunList) error {
	var buf bytes.Buffer

	if len(l.Runs) == 0 {
		buf.WriteString("No validation runs found.\n")
		_, err := w.Write(buf.Bytes())
		return err
	}

	fmt.Fprintf(&buf, "Total runs: %d\n", l.Total)
	for _, run := range l.Runs {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "Run ID: %s\n", run.ID)
		fmt.Fprintf(&buf, "Started: %s (%s)\n", run.StartedAt.Format(time.RFC3339), run.Duration.Round(time.Microsecond))
		fmt.Fprintf(&buf, "Trigger: %s\n", run.Trigger)
		if run.ConfigPath != "" {
			fmt.Fprintf(&buf, "Config: %s\n", run.ConfigPath)
		}
		fmt.Fprintf(&buf, "Schema: %s\n", run.SchemaPath)
		fmt.Fprintf(&buf, "Outcome: %s\n", run.Outcome)
		if run.Rule != "" {
			fmt.Fprintf(&buf, "Rule: %s\n", run.Rule)
		}
		if run.FieldPath != "" {
			fmt.Fprintf(&buf, "Field: %s\n", run.FieldPath)
		}
		if run.Message != "" {
			fmt.Fprintf(&buf, "Message: %s\n", run.Message)
		}
	}

	if remaining := l.Total - int64(len(l.Runs)); remaining > 0 {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "... and %d more runs\n", remaining)
		buf.WriteString("Use --limit to show more.\n")
	}

	_, err := w.Write(buf.Bytes())
	return err
}
