package tomlschema

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"runbeam/harmony-validator/pkg/history"
	"runbeam/harmony-validator/pkg/telemetry/logging"
	"runbeam/harmony-validator/pkg/telemetry/metrics"
	"runbeam/harmony-validator/pkg/telemetry/tracing"
	"runbeam/harmony-validator/pkg/tomlschema/document"
	schemaErrors "runbeam/harmony-validator/pkg/tomlschema/errors"
	"runbeam/harmony-validator/pkg/tomlschema/schema"
	"runbeam/harmony-validator/pkg/tomlschema/validator"
)

var defaultEngine = validator.NewValidator()

// Validate checks an already decoded configuration tree against def and
// returns the first violation, or nil.
func Validate(config map[string]any, def *schema.Definition) error {
	return defaultEngine.Validate(config, def)
}

// LoadSchema builds a schema definition from TOML schema text.
func LoadSchema(text string) (*schema.Definition, error) {
	return schema.NewLoader().LoadBytes([]byte(text), "")
}

// Options configures a Validator. Every field is optional.
type Options struct {
	Logger  *logging.Logger
	Metrics *metrics.Collector
	Tracer  *tracing.Tracer

	// History records one run per ValidateFile/ValidateContent/ValidateMap call.
	History history.Store

	// MaxFileSize limits config and schema documents. 0 uses document.DefaultMaxSize.
	MaxFileSize int64
}

// Validator runs instrumented validations. It is safe for concurrent use.
type Validator struct {
	engine  *validator.Validator
	decoder *document.Decoder
	loader  *schema.Loader
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	history history.Store
	now     func() time.Time
}

// New creates a Validator from opts.
func New(opts Options) *Validator {
	decoder := document.NewDecoder()
	if opts.MaxFileSize > 0 {
		decoder = decoder.WithMaxSize(opts.MaxFileSize)
	}

	v := &Validator{
		engine:  validator.NewValidator(),
		decoder: decoder,
		loader:  schema.NewLoader().WithDecoder(decoder),
		logger:  opts.Logger,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
		history: opts.History,
		now:     time.Now,
	}

	if v.logger == nil {
		v.logger = logging.Nop()
	}
	if v.metrics == nil {
		v.metrics = metrics.Disabled()
	}
	if v.tracer == nil {
		v.tracer = tracing.Noop()
	}

	return v
}

// LoadSchema builds a schema from TOML text.
func (v *Validator) LoadSchema(ctx context.Context, text string) (*schema.Definition, error) {
	return v.loadSchema(ctx, "", func() (*schema.Definition, error) {
		return v.loader.LoadBytes([]byte(text), "")
	})
}

// LoadSchemaFile reads and builds the schema at path. YAML schemas are
// accepted for .yaml/.yml paths.
func (v *Validator) LoadSchemaFile(ctx context.Context, path string) (*schema.Definition, error) {
	return v.loadSchema(ctx, path, func() (*schema.Definition, error) {
		return v.loader.LoadFile(path)
	})
}

func (v *Validator) loadSchema(ctx context.Context, path string, load func() (*schema.Definition, error)) (*schema.Definition, error) {
	ctx, span := v.tracer.Start(ctx, tracing.SpanLoadSchema)
	defer span.End()

	start := v.now()
	def, err := load()
	elapsed := v.now().Sub(start)

	if err != nil {
		v.metrics.RecordSchemaLoad(metrics.ResultFailure, elapsed, 0, 0)
		tracing.SetError(span, err)
		tracing.SetStatus(span, err)
		v.logger.ErrorContext(ctx, "schema load failed", "schema_path", path, "error", err)
		return nil, err
	}

	v.metrics.RecordSchemaLoad(metrics.ResultSuccess, elapsed, len(def.Tables), def.FieldCount())
	tracing.SetSchemaAttributes(span, def.Version(), len(def.Tables), def.FieldCount())
	tracing.SetStatus(span, nil)
	v.logger.DebugContext(ctx, "schema loaded",
		"schema_path", path,
		"version", def.Version(),
		"tables", len(def.Tables),
		"fields", def.FieldCount(),
		"duration", elapsed,
	)

	return def, nil
}

// ValidateFile reads the configuration at configPath, loads the schema at
// schemaPath and validates. The config format follows the file extension.
func (v *Validator) ValidateFile(ctx context.Context, configPath, schemaPath string) error {
	_, err := v.ValidateFileAndSchema(ctx, configPath, schemaPath)
	return err
}

// ValidateFileAndSchema is ValidateFile that also returns the loaded schema
// for reuse with ValidateFileWith. The schema is nil when it was not loaded.
func (v *Validator) ValidateFileAndSchema(ctx context.Context, configPath, schemaPath string) (*schema.Definition, error) {
	var def *schema.Definition
	err := v.run(ctx, configPath, schemaPath, func(ctx context.Context) error {
		config, err := v.readConfig(configPath)
		if err != nil {
			return err
		}

		def, err = v.LoadSchemaFile(ctx, schemaPath)
		if err != nil {
			return err
		}

		return v.engine.Validate(config, def)
	})
	return def, err
}

// ValidateFileWith validates the configuration at configPath against an
// already loaded schema. Watch mode uses it to avoid reloading an unchanged
// schema.
func (v *Validator) ValidateFileWith(ctx context.Context, configPath string, def *schema.Definition, schemaPath string) error {
	return v.run(ctx, configPath, schemaPath, func(ctx context.Context) error {
		config, err := v.readConfig(configPath)
		if err != nil {
			return err
		}
		return v.engine.Validate(config, def)
	})
}

// ValidateContent decodes TOML content and validates it against the schema
// at schemaPath. The content is parsed before the schema is loaded.
func (v *Validator) ValidateContent(ctx context.Context, content, schemaPath string) error {
	return v.run(ctx, "", schemaPath, func(ctx context.Context) error {
		config, err := v.decodeConfig([]byte(content), document.FormatTOML)
		if err != nil {
			return err
		}

		def, err := v.LoadSchemaFile(ctx, schemaPath)
		if err != nil {
			return err
		}

		return v.engine.Validate(config, def)
	})
}

// ValidateMap validates an in-memory configuration. Go values such as int
// or []string are normalized to the document kinds first.
func (v *Validator) ValidateMap(ctx context.Context, config map[string]any, def *schema.Definition) error {
	return v.run(ctx, "", "", func(ctx context.Context) error {
		normalized, err := document.Normalize(config)
		if err != nil {
			return schemaErrors.NewValidationError(fmt.Sprintf("Unsupported configuration value: %v", err))
		}
		return v.engine.Validate(normalized, def)
	})
}

func (v *Validator) readConfig(path string) (map[string]any, error) {
	data, err := v.decoder.ReadFile(path)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return nil, schemaErrors.NewValidationError(fmt.Sprintf("Config file not found: %s", path))
		}
		return nil, schemaErrors.NewValidationError(fmt.Sprintf("Cannot read config file: %s", path))
	}
	return v.decodeConfig(data, document.DetectFormat(path))
}

func (v *Validator) decodeConfig(data []byte, format document.Format) (map[string]any, error) {
	tree, err := v.decoder.Decode(data, format)
	if err != nil {
		var syntaxErr *document.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, schemaErrors.NewValidationError(
				fmt.Sprintf("Invalid %s: %s", strings.ToUpper(string(syntaxErr.Format)), syntaxErr.Message))
		}
		return nil, schemaErrors.NewValidationError(fmt.Sprintf("Cannot read config: %v", err))
	}
	return tree, nil
}

// run wraps one validation with a run id, span, metrics, logging and history.
func (v *Validator) run(ctx context.Context, configPath, schemaPath string, validate func(context.Context) error) error {
	runID := logging.GetRunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	if configPath != "" {
		ctx = logging.WithConfigPath(ctx, configPath)
	}
	if schemaPath != "" {
		ctx = logging.WithSchemaPath(ctx, schemaPath)
	}

	trigger := TriggerFromContext(ctx)
	ctx, span := v.tracer.Start(ctx, tracing.SpanValidate,
		tracing.NewAttributeBuilder().WithTrigger(trigger).Build())
	defer span.End()
	tracing.SetRunAttributes(span, runID, configPath, schemaPath)

	start := v.now()
	err := validate(ctx)
	elapsed := v.now().Sub(start)

	run := &history.Run{
		ID:         runID,
		ConfigPath: configPath,
		SchemaPath: schemaPath,
		Trigger:    trigger,
		StartedAt:  start,
		Duration:   elapsed,
	}

	var verr *schemaErrors.ValidationError
	var loadErr *schemaErrors.SchemaLoadError
	switch {
	case err == nil:
		run.Outcome = history.OutcomeValid
		v.metrics.RecordValidation(metrics.ResultValid, metrics.RuleNone, elapsed)
		tracing.SetSuccessAttributes(span)
		v.logger.InfoContext(ctx, "validation passed", "duration", elapsed)

	case errors.As(err, &verr):
		run.Outcome = history.OutcomeInvalid
		run.Kind = string(verr.Kind)
		run.Rule = verr.Rule
		run.FieldPath = verr.FieldPath
		run.Message = verr.Message
		v.metrics.RecordValidation(metrics.ResultInvalid, verr.Rule, elapsed)
		tracing.SetFailureAttributes(span, string(verr.Kind), verr.Rule, verr.FieldPath, err)
		v.logger.WarnContext(ctx, "validation failed",
			"kind", verr.Kind,
			"rule", verr.Rule,
			"field", verr.FieldPath,
			"actual", v.logger.Redactor().RedactField(verr.FieldPath, verr.Actual),
			"error", verr.Message,
		)

	case errors.As(err, &loadErr):
		run.Outcome = history.OutcomeError
		run.Kind = "schema_load"
		run.Message = loadErr.Message
		v.metrics.RecordValidation(metrics.ResultError, metrics.RuleNone, elapsed)
		tracing.SetError(span, err)
		tracing.SetStatus(span, err)

	default:
		run.Outcome = history.OutcomeError
		run.Message = err.Error()
		v.metrics.RecordValidation(metrics.ResultError, metrics.RuleNone, elapsed)
		tracing.SetError(span, err)
		tracing.SetStatus(span, err)
		v.logger.ErrorContext(ctx, "validation error", "error", err)
	}

	v.record(ctx, run)

	return err
}

func (v *Validator) record(ctx context.Context, run *history.Run) {
	if v.history == nil {
		return
	}

	ctx, span := v.tracer.Start(ctx, tracing.SpanHistory)
	defer span.End()

	if err := v.history.Record(ctx, run); err != nil {
		tracing.SetError(span, err)
		v.logger.WarnContext(ctx, "failed to record validation run", "error", err)
	}
}
