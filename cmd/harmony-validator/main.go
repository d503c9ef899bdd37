// harmony-validator checks Harmony proxy configuration files against a
// TOML schema.
//
// Usage:
//
//	# Validate a configuration file
//	harmony-validator validate config.toml --schema harmony-schema.toml
//
//	# Validate configuration read from stdin
//	cat config.toml | harmony-validator validate -
//
//	# Check that a schema loads, or print its structure
//	harmony-validator schema check harmony-schema.toml
//	harmony-validator schema inspect harmony-schema.toml
//
//	# Re-validate on every change and serve /metrics, /healthz and /readyz
//	harmony-validator watch config.toml
//
//	# List recorded validation runs
//	harmony-validator history --outcome invalid
//
// Exit status is 0 when the configuration is valid, 1 on a validation
// failure, 2 when the schema cannot be loaded and 3 on any other error.
package main

func main() {
	Execute()
}
