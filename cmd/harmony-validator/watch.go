package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"runbeam/harmony-validator/pkg/cli"
	"runbeam/harmony-validator/pkg/history"
	"runbeam/harmony-validator/pkg/server"
	"runbeam/harmony-validator/pkg/watch"
)

var watchFlags struct {
	schemaPath    string
	listenAddress string
	schedule      string
	debounce      time.Duration
	noServer      bool
}

var watchCmd = &cobra.Command{
	Use:   "watch <config-file>",
	Short: "Re-validate a configuration whenever it or its schema changes",
	Long: `Validate a configuration file, then keep it validated until interrupted.

A run is triggered at startup, after every change of the config or schema
file (debounced), and on the optional cron schedule. A schema change reloads
the schema. Every result is printed.

While watching, an HTTP server exposes:
  /metrics  Prometheus metrics
  /healthz  liveness
  /readyz   readiness (ready only while the last run passed)
  /version  build information

When history is enabled, old runs are pruned on the retention schedule.

Examples:
  # Watch with defaults
  harmony-validator watch config.toml

  # Also re-validate every 5 minutes and serve on all interfaces
  harmony-validator watch config.toml --schedule "*/5 * * * *" --listen 0.0.0.0:9090`,
	Args: cobra.ExactArgs(1),
	RunE: watchConfig,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.schemaPath, "schema", "s", "", "schema file (default from config)")
	watchCmd.Flags().StringVarP(&watchFlags.listenAddress, "listen", "l", "", "override status server address")
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "override re-validation cron schedule")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "override file change debounce interval")
	watchCmd.Flags().BoolVar(&watchFlags.noServer, "no-server", false, "do not start the status server")
}

func watchConfig(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.shutdown()

	watchCfg := a.cfg.Watch
	if watchFlags.listenAddress != "" {
		watchCfg.ListenAddress = watchFlags.listenAddress
	}
	if watchFlags.schedule != "" {
		watchCfg.Schedule = watchFlags.schedule
	}
	if watchFlags.debounce > 0 {
		watchCfg.Debounce = watchFlags.debounce
	}
	if watchFlags.noServer {
		watchCfg.ListenAddress = ""
	}

	ctx, cancel := cli.SetupSignalHandler(cmd.Context())
	defer cancel()

	logger := a.telemetry.Logger()
	configPath := args[0]
	schemaPath := a.schemaPathOr(watchFlags.schemaPath)

	runner, err := watch.NewRunner(watch.Options{
		ConfigPath: configPath,
		SchemaPath: schemaPath,
		Watch:      watchCfg,
		Validator:  a.validator,
		Telemetry:  a.telemetry,
		OnResult: func(r watch.Result) {
			if err := a.report(r.RunID, r.ConfigPath, r.SchemaPath, r.Err); err != nil && !cli.IsReported(err) {
				logger.Error("failed to print result", "error", err)
			}
		},
	})
	if err != nil {
		return cli.NewConfigError("watch", err.Error())
	}

	if a.history != nil && a.cfg.History.Retention.Schedule != "" {
		pruner := history.NewPruner(a.history, a.cfg.History.Retention, logger, a.telemetry.Metrics())
		if err := pruner.Start(ctx); err != nil {
			return cli.NewConfigError("history.retention.schedule", err.Error())
		}
		defer pruner.Stop()
	}

	serverErr := make(chan error, 1)
	if watchCfg.ListenAddress != "" {
		srv := server.New(server.Config{ListenAddress: watchCfg.ListenAddress}, a.telemetry.Handler(), logger)
		go func() {
			if err := srv.Start(ctx); err != nil {
				serverErr <- err
				cancel()
			}
		}()
	}

	logger.Info("watching configuration",
		"config", configPath,
		"schema", schemaPath,
		"listen_address", watchCfg.ListenAddress,
		"schedule", watchCfg.Schedule,
	)

	if err := runner.Run(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}

	select {
	case err := <-serverErr:
		return cli.NewCommandError("watch", fmt.Errorf("status server failed: %w", err))
	default:
		return nil
	}
}
