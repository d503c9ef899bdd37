package config

import "time"

// Config is the root configuration structure for harmony-validator.
// It contains the schema source, output, watch mode, run history and
// telemetry settings.
type Config struct {
	// Schema contains the default schema location and document limits.
	Schema SchemaConfig `yaml:"schema"`

	// Output controls how validation results are rendered.
	Output OutputConfig `yaml:"output"`

	// Watch contains settings for continuous re-validation.
	Watch WatchConfig `yaml:"watch"`

	// History contains configuration for recording validation runs.
	History HistoryConfig `yaml:"history"`

	// Telemetry contains configuration for logging, metrics, tracing
	// and health endpoints.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SchemaConfig contains schema source configuration.
type SchemaConfig struct {
	// Path is the schema file used when no --schema flag is given.
	// Default: "harmony-schema.toml"
	Path string `yaml:"path"`

	// MaxFileSize is the maximum size in bytes of a schema or config document.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`
}

// OutputConfig contains result rendering configuration.
type OutputConfig struct {
	// Format is the result format.
	// Options: "text", "json"
	// Default: "text"
	Format string `yaml:"format"`

	// RedactSensitive masks actual values of sensitive-looking fields
	// (passwords, tokens, keys) in printed results.
	// Default: true
	RedactSensitive bool `yaml:"redact_sensitive"`
}

// WatchConfig contains watch mode configuration.
type WatchConfig struct {
	// Debounce is the quiet period after a file change before re-validating.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression for periodic re-validation.
	// Empty disables scheduled runs.
	// Example: "*/5 * * * *"
	Schedule string `yaml:"schedule"`

	// Extensions limits which file changes trigger a run.
	// Default: [".toml", ".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`

	// ListenAddress is the address for the metrics and health endpoints.
	// Empty disables the HTTP server.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`
}

// HistoryConfig contains validation run history configuration.
type HistoryConfig struct {
	// Enabled controls whether validation runs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite backend configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Memory contains in-memory backend configuration.
	Memory MemoryConfig `yaml:"memory"`

	// Retention contains pruning configuration.
	Retention RetentionConfig `yaml:"retention"`

	// DefaultLimit is the number of runs listed when no limit is given.
	// Default: 20
	DefaultLimit int `yaml:"default_limit"`
}

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the file path for the SQLite database.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite" (pure Go, modernc.org/sqlite), "sqlite3" (cgo, mattn/go-sqlite3)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// MemoryConfig contains in-memory backend configuration.
type MemoryConfig struct {
	// MaxRecords is the number of runs kept before the oldest are evicted.
	// Default: 1000
	MaxRecords int `yaml:"max_records"`
}

// RetentionConfig contains history retention configuration.
type RetentionConfig struct {
	// Days is the number of days to keep runs.
	// Default: 30
	Days int `yaml:"days"`

	// Schedule is a cron expression for pruning in watch mode.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactValues enables redaction of sensitive values in log fields.
	// Default: true
	RedactValues bool `yaml:"redact_values"`

	// RedactPatterns contains custom redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "harmony"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "validator"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for validation duration (seconds).
	// Default: [0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "harmony-validator"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health check endpoints are served in watch mode.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// LivenessPath is the path for the liveness probe endpoint.
	// Default: "/healthz"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the path for the readiness probe endpoint.
	// Default: "/readyz"
	ReadinessPath string `yaml:"readiness_path"`

	// VersionPath is the path for the version information endpoint.
	// Default: "/version"
	VersionPath string `yaml:"version_path"`

	// CheckTimeout is the timeout for individual component health checks.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}
