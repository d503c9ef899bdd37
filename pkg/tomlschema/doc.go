// Package tomlschema validates Harmony configuration documents against a
// declarative schema.
//
// The engine lives in the subpackages (schema, rules, validator, errors,
// document). This package is the entry point most callers want: it reads
// files, decodes TOML or YAML, loads schemas, runs the fail-fast validator
// and reports each run to the logger, metrics collector, tracer and run
// history configured on the Validator.
//
// # Quick Start
//
//	def, err := tomlschema.LoadSchema(schemaText)
//	if err != nil {
//	    return err // *errors.SchemaLoadError
//	}
//	if err := tomlschema.Validate(config, def); err != nil {
//	    var verr *errors.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Println(verr.Format())
//	    }
//	}
//
// # Instrumented validation
//
//	v := tomlschema.New(tomlschema.Options{
//	    Logger:  tel.Logger(),
//	    Metrics: tel.Metrics(),
//	    Tracer:  tel.Tracer(),
//	    History: store,
//	})
//	err := v.ValidateFile(ctx, "harmony.toml", "harmony-schema.toml")
//
// ValidateFile, ValidateContent and ValidateMap return nil, a
// *errors.ValidationError or a *errors.SchemaLoadError.
package tomlschema
