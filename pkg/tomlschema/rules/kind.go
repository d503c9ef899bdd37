package rules

import (
	"math"
	"reflect"
	"time"

	"runbeam/harmony-validator/pkg/tomlschema/schema"
)

// Kind names reported in type errors.
const (
	KindNull     = "null"
	KindString   = "string"
	KindInteger  = "integer"
	KindFloat    = "float"
	KindBoolean  = "boolean"
	KindArray    = "array"
	KindTable    = "table"
	KindDatetime = "datetime"
	KindUnknown  = "unknown"
)

// KindOf classifies a configuration value.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case float32, float64:
		return KindFloat
	case bool:
		return KindBoolean
	case []any:
		return KindArray
	case map[string]any:
		return KindTable
	case time.Time:
		return KindDatetime
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		return KindTable
	default:
		return KindUnknown
	}
}

// MatchesType reports whether v satisfies the declared type t.
// known is false when t is not a recognized type.
//
// float accepts integers too; array and table both accept
// sequences and mappings.
func MatchesType(v any, t schema.FieldType) (matched, known bool) {
	kind := KindOf(v)

	switch t {
	case schema.TypeString:
		return kind == KindString, true
	case schema.TypeInteger:
		return kind == KindInteger, true
	case schema.TypeBoolean:
		return kind == KindBoolean, true
	case schema.TypeFloat:
		return kind == KindFloat || kind == KindInteger, true
	case schema.TypeArray, schema.TypeTable:
		return kind == KindArray || kind == KindTable, true
	default:
		return false, false
	}
}

// number is a numeric value widened to int64 or float64. Unsigned values
// above the int64 range keep isInt but are held in f.
type number struct {
	i     int64
	f     float64
	isInt bool
	wide  bool
}

func fromUint(u uint64) number {
	if u > math.MaxInt64 {
		return number{f: float64(u), isInt: true, wide: true}
	}
	return number{i: int64(u), isInt: true}
}

func toNumber(v any) (number, bool) {
	switch n := v.(type) {
	case int:
		return number{i: int64(n), isInt: true}, true
	case int8:
		return number{i: int64(n), isInt: true}, true
	case int16:
		return number{i: int64(n), isInt: true}, true
	case int32:
		return number{i: int64(n), isInt: true}, true
	case int64:
		return number{i: n, isInt: true}, true
	case uint:
		return fromUint(uint64(n)), true
	case uint8:
		return number{i: int64(n), isInt: true}, true
	case uint16:
		return number{i: int64(n), isInt: true}, true
	case uint32:
		return number{i: int64(n), isInt: true}, true
	case uint64:
		return fromUint(n), true
	case float32:
		return number{f: float64(n)}, true
	case float64:
		return number{f: n}, true
	default:
		return number{}, false
	}
}

func (n number) float() float64 {
	if n.isInt && !n.wide {
		return float64(n.i)
	}
	return n.f
}

// compare returns -1, 0 or 1. Two integers are compared exactly.
func (n number) compare(other number) int {
	if n.isInt && other.isInt && !n.wide && !other.wide {
		switch {
		case n.i < other.i:
			return -1
		case n.i > other.i:
			return 1
		default:
			return 0
		}
	}

	a, b := n.float(), other.float()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
