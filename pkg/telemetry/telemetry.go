package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"runbeam/harmony-validator/pkg/config"
	"runbeam/harmony-validator/pkg/telemetry/health"
	"runbeam/harmony-validator/pkg/telemetry/logging"
	"runbeam/harmony-validator/pkg/telemetry/metrics"
	"runbeam/harmony-validator/pkg/telemetry/tracing"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Telemetry owns the logger, metrics collector, tracer and health checker
// of one process.
type Telemetry struct {
	config  *config.TelemetryConfig
	build   BuildInfo
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	health  *health.Checker
	lastRun *health.LastRun
}

// Options adjusts construction, mainly for tests and the CLI's --quiet and
// --verbose flags.
type Options struct {
	// LogWriter overrides the log destination (stderr by default).
	LogWriter io.Writer
}

// New builds every component from cfg. The "last_run" readiness check is
// registered on the health checker.
func New(cfg *config.TelemetryConfig, build BuildInfo, opts ...Options) (*Telemetry, error) {
	if cfg == nil {
		return nil, errors.New("telemetry config is nil")
	}

	logCfg := logging.FromConfig(cfg.Logging)
	for _, o := range opts {
		if o.LogWriter != nil {
			logCfg.Writer = o.LogWriter
		}
	}

	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tracer, err := tracing.New(&cfg.Tracing, build.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	t := &Telemetry{
		config:  cfg,
		build:   build,
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Metrics, nil),
		tracer:  tracer,
		health:  health.New(cfg.Health.CheckTimeout),
		lastRun: health.NewLastRun(),
	}
	t.health.RegisterCheck("last_run", t.lastRun.Check)

	return t, nil
}

// Nop returns telemetry that logs nothing, records nothing and traces nothing.
func Nop() *Telemetry {
	t := &Telemetry{
		config:  &config.TelemetryConfig{},
		logger:  logging.Nop(),
		metrics: metrics.Disabled(),
		tracer:  tracing.Noop(),
		health:  health.New(0),
		lastRun: health.NewLastRun(),
	}
	t.health.RegisterCheck("last_run", t.lastRun.Check)
	return t
}

// Logger returns the process logger.
func (t *Telemetry) Logger() *logging.Logger { return t.logger }

// Metrics returns the metrics collector.
func (t *Telemetry) Metrics() *metrics.Collector { return t.metrics }

// Tracer returns the tracer.
func (t *Telemetry) Tracer() *tracing.Tracer { return t.tracer }

// Health returns the health checker.
func (t *Telemetry) Health() *health.Checker { return t.health }

// LastRun returns the tracker behind the "last_run" readiness check.
func (t *Telemetry) LastRun() *health.LastRun { return t.lastRun }

// Handler returns the watch-mode HTTP handler: metrics (when enabled) and
// health endpoints (when enabled), wrapped in trace context extraction.
func (t *Telemetry) Handler() http.Handler {
	mux := http.NewServeMux()

	if t.config.Metrics.Enabled {
		mux.Handle(t.config.Metrics.Path, t.metrics.Handler())
	}
	if t.config.Health.Enabled {
		health.Register(mux, t.health, t.config.Health,
			health.NewVersionInfo(t.build.Version, t.build.Commit, t.build.BuildTime))
	}

	return tracing.HTTPMiddleware(mux)
}

// Shutdown flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return t.tracer.Shutdown(ctx)
}
