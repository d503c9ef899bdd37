// Package history records validation runs so that past results can be
// listed and audited.
//
// Every run executed by the CLI (validate, schema check, watch mode
// re-validation) produces one Run: its id, the configuration and schema
// paths, the outcome, and for failures the error kind, rule, field path and
// message. Actual values are never stored.
//
// # Backends
//
//   - MemoryStore: bounded in-process store, used in tests and when
//     history.backend is "memory"
//   - SQLiteStore: durable store using database/sql with either the pure Go
//     modernc.org/sqlite driver ("sqlite", default) or the cgo
//     github.com/mattn/go-sqlite3 driver ("sqlite3")
//
// # Retention
//
// Pruner deletes runs older than history.retention.days. In watch mode it is
// scheduled with a cron expression (history.retention.schedule).
//
//	store, err := history.Open(cfg.History)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	pruner := history.NewPruner(store, cfg.History.Retention, logger, collector)
//	if err := pruner.Start(ctx); err != nil {
//	    return err
//	}
//	defer pruner.Stop()
package history
