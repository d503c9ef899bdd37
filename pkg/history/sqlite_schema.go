package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the run history tables. Timestamps are stored as Unix
// nanoseconds so both drivers round-trip them identically.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    config_path TEXT NOT NULL,
    schema_path TEXT NOT NULL,
    trigger_name TEXT NOT NULL,
    outcome TEXT NOT NULL,
    kind TEXT,
    rule TEXT,
    field_path TEXT,
    message TEXT,
    started_at INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_config_path ON runs(config_path);
CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);
`

// InsertSchemaVersion records the schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion returns the latest applied schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const insertRun = `
INSERT INTO runs (
    id, config_path, schema_path, trigger_name, outcome,
    kind, rule, field_path, message,
    started_at, duration_ns
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRuns = `
SELECT id, config_path, schema_path, trigger_name, outcome,
       kind, rule, field_path, message,
       started_at, duration_ns
FROM runs
`
