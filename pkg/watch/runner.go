package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"runbeam/harmony-validator/pkg/config"
	"runbeam/harmony-validator/pkg/history"
	"runbeam/harmony-validator/pkg/telemetry"
	"runbeam/harmony-validator/pkg/telemetry/logging"
	"runbeam/harmony-validator/pkg/telemetry/tracing"
	"runbeam/harmony-validator/pkg/tomlschema"
	"runbeam/harmony-validator/pkg/tomlschema/schema"
)

// Result is the outcome of one watch-mode validation.
type Result struct {
	RunID      string
	Trigger    string
	ConfigPath string
	SchemaPath string
	Err        error // nil when the configuration is valid
	FinishedAt time.Time
}

// Valid returns true if the run passed.
func (r Result) Valid() bool {
	return r.Err == nil
}

// Options configures a Runner.
type Options struct {
	ConfigPath string
	SchemaPath string
	Watch      config.WatchConfig

	Validator *tomlschema.Validator
	Telemetry *telemetry.Telemetry

	// OnResult is called after every run, in run order.
	OnResult func(Result)
}

// Runner keeps a configuration validated: once at start, after every
// debounced change of the config or schema file, and on the optional cron
// schedule. Runs are serialized.
type Runner struct {
	opts      Options
	logger    *logging.Logger
	telemetry *telemetry.Telemetry

	configAbs string
	schemaAbs string

	mu  sync.Mutex
	def *schema.Definition // nil until loaded, and after the schema changes
}

// NewRunner validates opts and creates a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.ConfigPath == "" || opts.SchemaPath == "" {
		return nil, errors.New("watch mode needs both a config and a schema path")
	}
	if opts.Validator == nil {
		return nil, errors.New("watch mode needs a validator")
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.Nop()
	}
	if opts.Watch.Schedule != "" {
		if err := ValidateSchedule(opts.Watch.Schedule); err != nil {
			return nil, err
		}
	}

	configAbs, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	schemaAbs, err := filepath.Abs(opts.SchemaPath)
	if err != nil {
		return nil, err
	}

	return &Runner{
		opts:      opts,
		logger:    opts.Telemetry.Logger().With("component", "watch"),
		telemetry: opts.Telemetry,
		configAbs: configAbs,
		schemaAbs: schemaAbs,
	}, nil
}

// Run validates once, then watches until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.Revalidate(ctx, history.TriggerStartup)

	scheduler := NewScheduler(r.opts.Watch.Schedule, r.logger)
	if err := scheduler.Start(ctx, func(ctx context.Context) {
		r.Revalidate(ctx, history.TriggerSchedule)
	}); err != nil {
		return err
	}
	defer scheduler.Stop()

	watcher, err := NewFileWatcher(FileWatcherConfig{
		Paths:            []string{r.opts.ConfigPath, r.opts.SchemaPath},
		DebounceInterval: r.opts.Watch.Debounce,
		Extensions:       r.opts.Watch.Extensions,
	}, r.logger)
	if err != nil {
		return err
	}

	return watcher.Watch(ctx, func(paths []string) {
		r.Revalidate(ctx, r.triggerFor(paths))
	})
}

// triggerFor maps changed paths to a trigger. A schema change wins since
// it also forces a schema reload.
func (r *Runner) triggerFor(paths []string) string {
	for _, path := range paths {
		if path == r.schemaAbs {
			return history.TriggerSchema
		}
	}
	return history.TriggerConfig
}

// Revalidate runs one validation and reports it to the readiness check,
// metrics and OnResult.
func (r *Runner) Revalidate(ctx context.Context, trigger string) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx = tomlschema.WithTrigger(ctx, trigger)

	ctx, span := r.telemetry.Tracer().Start(ctx, tracing.SpanWatchRun,
		tracing.NewAttributeBuilder().WithRun(runID, r.opts.ConfigPath, r.opts.SchemaPath).WithTrigger(trigger).Build())
	defer span.End()

	r.telemetry.Metrics().RecordWatchTrigger(trigger)
	r.logger.DebugContext(ctx, "revalidating", "trigger", trigger)

	if trigger == history.TriggerSchema {
		r.def = nil
	}

	err := r.validate(ctx)
	tracing.SetStatus(span, err)

	result := Result{
		RunID:      runID,
		Trigger:    trigger,
		ConfigPath: r.opts.ConfigPath,
		SchemaPath: r.opts.SchemaPath,
		Err:        err,
		FinishedAt: time.Now(),
	}

	r.telemetry.LastRun().Record(runID, r.opts.ConfigPath, err)
	if r.opts.OnResult != nil {
		r.opts.OnResult(result)
	}

	return result
}

// validate uses the cached schema, loading it when needed. A schema that
// fails to load is retried on the next run.
func (r *Runner) validate(ctx context.Context) error {
	if r.def != nil {
		return r.opts.Validator.ValidateFileWith(ctx, r.opts.ConfigPath, r.def, r.opts.SchemaPath)
	}

	def, err := r.opts.Validator.ValidateFileAndSchema(ctx, r.opts.ConfigPath, r.opts.SchemaPath)
	if def != nil {
		r.def = def
	}
	return err
}
