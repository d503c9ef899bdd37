// Package watch keeps a Harmony configuration validated while it is being
// edited.
//
// A Runner validates once at start, again after every debounced change of
// the configuration or schema file (fsnotify), and optionally on a cron
// schedule. A schema change drops the cached schema so the next run reloads
// it. Each run updates the readiness check, the watch metrics and the run
// history.
//
//	runner, err := watch.NewRunner(watch.Options{
//	    ConfigPath: "harmony.toml",
//	    SchemaPath: "harmony-schema.toml",
//	    Watch:      cfg.Watch,
//	    Validator:  v,
//	    Telemetry:  tel,
//	    OnResult:   printResult,
//	})
//	if err != nil {
//	    return err
//	}
//	return runner.Run(ctx)
package watch
