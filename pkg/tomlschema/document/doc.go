// Package document decodes configuration and schema text into the plain
// key-value tree consumed by the schema loader and the validator.
//
// TOML is the primary format (github.com/BurntSushi/toml). YAML documents
// (gopkg.in/yaml.v3) are accepted as well and normalized to the same kinds,
// so a YAML config validates exactly like its TOML equivalent.
//
// Parse failures are reported as a single *SyntaxError carrying the parser
// message; no line/column diagnostics are exposed.
//
//	tree, err := document.Decode(data, document.FormatTOML)
//	if err != nil {
//	    var syntaxErr *document.SyntaxError
//	    if errors.As(err, &syntaxErr) {
//	        ...
//	    }
//	}
package document
