package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"runbeam/harmony-validator/pkg/cli"
	"runbeam/harmony-validator/pkg/config"
	"runbeam/harmony-validator/pkg/history"
	"runbeam/harmony-validator/pkg/telemetry"
	"runbeam/harmony-validator/pkg/telemetry/logging"
	"runbeam/harmony-validator/pkg/tomlschema"
)

// app holds what a command needs after configuration is loaded.
type app struct {
	cfg       *config.Config
	telemetry *telemetry.Telemetry
	history   history.Store // nil when history is disabled
	validator *tomlschema.Validator
	formatter cli.Formatter
	redactor  *logging.Redactor // nil when output redaction is off
	out       io.Writer
}

// loadConfig loads the tool configuration and applies the global flags to
// a copy of it.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	loaded := config.GetConfig()
	if loaded == nil {
		return nil, cli.NewConfigError("", "configuration not initialized")
	}
	cfg := *loaded

	switch {
	case quiet:
		cfg.Telemetry.Logging.Level = "error"
	case verbose:
		cfg.Telemetry.Logging.Level = "debug"
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}

	return &cfg, nil
}

// newApp wires telemetry, history and the validator for cmd.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	format, err := cli.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, cli.NewConfigError("output.format", err.Error())
	}

	tel, err := telemetry.New(&cfg.Telemetry, telemetry.BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	}, telemetry.Options{LogWriter: cmd.ErrOrStderr()})
	if err != nil {
		return nil, cli.NewConfigError("telemetry", err.Error())
	}

	a := &app{
		cfg:       cfg,
		telemetry: tel,
		formatter: cli.NewFormatter(format),
		out:       cmd.OutOrStdout(),
	}
	if cfg.Output.RedactSensitive {
		a.redactor = logging.NewRedactor(cfg.Telemetry.Logging.RedactPatterns)
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History, tel.Logger())
		if err != nil {
			_ = tel.Shutdown(context.Background())
			return nil, cli.NewCommandError(cmd.Name(), fmt.Errorf("failed to open history: %w", err))
		}
		a.history = store
	}

	a.validator = tomlschema.New(tomlschema.Options{
		Logger:      tel.Logger(),
		Metrics:     tel.Metrics(),
		Tracer:      tel.Tracer(),
		History:     a.history,
		MaxFileSize: cfg.Schema.MaxFileSize,
	})

	return a, nil
}

// Close releases the history store and flushes spans.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	if a.history != nil {
		errs = append(errs, a.history.Close())
	}
	errs = append(errs, a.telemetry.Shutdown(ctx))
	return errors.Join(errs...)
}

// shutdownTimeout bounds flushing spans and closing history on exit.
const shutdownTimeout = 5 * time.Second

// shutdown calls Close with a bounded context and logs a failure.
func (a *app) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		a.telemetry.Logger().Warn("shutdown failed", "error", err)
	}
}

// report prints the result of a run. A failed run is returned as an
// ExitError so that only the exit code remains to be applied.
func (a *app) report(runID, configPath, schemaPath string, runErr error) error {
	result := cli.NewResult(runID, configPath, schemaPath, runErr, a.redactor)
	if err := a.formatter.FormatTo(a.out, result); err != nil {
		return cli.NewCommandError("output", err)
	}
	if runErr != nil {
		return cli.NewExitError(runErr)
	}
	return nil
}

// schemaPathOr returns flagValue, or the configured default schema path.
func (a *app) schemaPathOr(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return a.cfg.Schema.Path
}

// commandContext returns cmd's context with a fresh run ID and the
// command name attached.
func commandContext(cmd *cobra.Command) (context.Context, string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithCommand(ctx, cmd.CommandPath())
	return ctx, runID
}
