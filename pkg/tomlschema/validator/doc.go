// Package validator walks a decoded configuration tree against a schema
// definition and reports the first violation.
//
// Tables are visited in schema order. A fixed table is looked up by its
// exact name (a literal key, or a dotted path through nested TOML tables);
// a missing required table fails immediately. A pattern table is applied to
// every mapping whose name matches it, in sorted name order.
//
// Inside a table instance each field runs the rule set in a fixed order:
// Type, Required, Enum, NumericBounds, Array, Pattern. An absent field only
// runs Required. The first failure ends the run.
//
//	v := validator.NewValidator()
//	if err := v.Validate(config, def); err != nil {
//	    var verr *errors.ValidationError
//	    if stderrors.As(err, &verr) {
//	        fmt.Println(verr.Format())
//	    }
//	}
//
// Field paths are tracked with a Context, a stack of path segments that is
// restored on every exit from WithPath.
package validator
