// Package health provides liveness, readiness and version endpoints for
// the long-running watch mode.
//
// Readiness follows the watched configuration: the watch command registers
// a LastRun tracker as the "last_run" check, so /readyz returns 503 while
// the latest validation run failed and 200 once it passes again.
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	lastRun := health.NewLastRun()
//	checker.RegisterCheck("last_run", lastRun.Check)
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker, cfg.Telemetry.Health, health.NewVersionInfo(version, commit, date))
//
//	// after each run
//	lastRun.Record(runID, configPath, err)
package health
