// Package schema is the in-memory model of a configuration schema.
//
// A Definition holds an ordered list of tables. A fixed table is matched by
// its exact name; a pattern table ("network.*") is matched by its base name
// prefix and, optionally, a regular expression over the rest of the name.
// Each table holds an ordered list of fields with a declared type, a plain or
// conditional required flag and a set of typed constraints.
//
// Definitions are built once by a Loader and are read-only afterwards, so
// one Definition can be shared by concurrent validation runs.
//
// # Schema Documents
//
//	[schema]
//	version = "1.0"
//
//	[[table]]
//	name = "proxy"
//	required = true
//
//	[[table.field]]
//	name = "port"
//	type = "integer"
//	min = 1
//	max = 65535
//
// # Loading
//
//	def, err := schema.NewLoader().LoadFile("harmony-schema.toml")
//	if err != nil {
//	    var loadErr *errors.SchemaLoadError
//	    ...
//	}
//
// # Conditional Requirements
//
// required_if accepts two forms, evaluated against the sibling values of the
// enclosing table:
//
//	enable_wireguard == true
//	tls_cert exists
//
// Any other expression never holds.
package schema
