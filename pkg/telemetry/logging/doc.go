// Package logging provides structured logging for harmony-validator.
//
// The package wraps log/slog with:
//   - JSON, text, and console output formats
//   - Run-scoped context fields (run_id, command, config_path, schema_path)
//   - Redaction of secrets in log fields and echoed configuration values
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithConfigPath(ctx, "harmony.toml")
//	logger.WarnContext(ctx, "validation failed",
//	    "field", "database.password",
//	    "password", "hunter2", // masked
//	)
//
// # Redaction
//
// Values are masked when their key looks sensitive (password, secret,
// token, api_key, private_key, ...). Other strings are scanned for bearer
// tokens, vendor key prefixes, URL credentials, and PEM private keys.
// RedactField applies the same rules to a value found at a configuration
// field path, so that validation errors never echo secrets verbatim.
//
// Logs go to stderr by default; stdout is reserved for command output.
package logging
