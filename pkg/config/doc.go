// Package config provides configuration management for harmony-validator.
//
// This package handles loading, validating, and managing the tool's own
// settings from a YAML file with environment variable overrides. The
// configuration files being validated are not read through this package.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("harmony-validator.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("harmony-validator.yaml")
//
//  3. From an optional file (defaults when the default file is absent):
//     cfg, err := config.LoadOrDefault("", false)
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention HARMONY_SECTION_FIELD:
//
//   - HARMONY_SCHEMA_PATH overrides schema.path
//   - HARMONY_OUTPUT_FORMAT overrides output.format
//   - HARMONY_HISTORY_SQLITE_DRIVER overrides history.sqlite.driver
//   - HARMONY_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails if invalid, reporting every bad field)
//
// # Example Configuration
//
//	schema:
//	  path: "harmony-schema.toml"
//
//	output:
//	  format: "text"
//
//	history:
//	  enabled: true
//	  backend: "sqlite"
//	  sqlite:
//	    path: "data/history.db"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
