package document

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the text format of a document.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DefaultMaxSize is the default maximum document size (10MB).
const DefaultMaxSize int64 = 10 * 1024 * 1024

var (
	// ErrTooLarge is returned when a document exceeds the decoder size limit.
	ErrTooLarge = errors.New("document exceeds maximum size")

	// ErrNotFound is returned when a document file does not exist.
	ErrNotFound = errors.New("document not found")
)

// SyntaxError reports a document that could not be parsed.
type SyntaxError struct {
	Format  Format
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid %s syntax: %s", strings.ToUpper(string(e.Format)), e.Message)
}

// DetectFormat selects the format from a file extension.
// .yaml and .yml are YAML; everything else is TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ParseFormat parses a format name. An empty name selects TOML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported document format: %s", name)
	}
}

// Decoder turns TOML or YAML text into a normalized key-value tree.
//
// The tree only contains string, int64, float64, bool, time.Time,
// []any and map[string]any values.
type Decoder struct {
	maxSize int64
}

// NewDecoder creates a decoder with the default size limit.
func NewDecoder() *Decoder {
	return &Decoder{maxSize: DefaultMaxSize}
}

// WithMaxSize sets the maximum document size in bytes. Non-positive values disable the limit.
func (d *Decoder) WithMaxSize(size int64) *Decoder {
	d.maxSize = size
	return d
}

// MaxSize returns the configured size limit.
func (d *Decoder) MaxSize() int64 {
	return d.maxSize
}

// ReadFile reads a document from disk, enforcing the size limit.
func (d *Decoder) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	if d.maxSize > 0 && info.Size() > d.maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, info.Size(), d.maxSize)
	}

	return os.ReadFile(path)
}

// Decode parses data in the given format into a normalized tree.
func (d *Decoder) Decode(data []byte, format Format) (map[string]any, error) {
	if d.maxSize > 0 && int64(len(data)) > d.maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), d.maxSize)
	}

	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &SyntaxError{Format: format, Message: err.Error()}
		}
	case FormatTOML, "":
		format = FormatTOML
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, &SyntaxError{Format: format, Message: err.Error()}
		}
	default:
		return nil, fmt.Errorf("unsupported document format: %s", format)
	}

	if raw == nil {
		return map[string]any{}, nil
	}

	tree, err := normalizeMap(raw)
	if err != nil {
		return nil, &SyntaxError{Format: format, Message: err.Error()}
	}
	return tree, nil
}

// Decode parses data with a default decoder.
func Decode(data []byte, format Format) (map[string]any, error) {
	return NewDecoder().Decode(data, format)
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalize converts a caller-built map into the tree kinds used by the
// validator: sized integers widen to int64, float32 to float64, and typed
// slices and maps become []any and map[string]any.
func Normalize(m map[string]any) (map[string]any, error) {
	if m == nil {
		return map[string]any{}, nil
	}
	return normalizeMap(m)
}

func normalizeMap(m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		nv, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = nv
	}
	return out, nil
}

// normalize converts parser-specific representations to the tree kinds.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, bool, int64, float64, time.Time:
		return val, nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case uint:
		return normalizeUint(uint64(val))
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case uint64:
		return normalizeUint(val)
	case float32:
		return float64(val), nil
	case map[string]any:
		return normalizeMap(val)
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = item
		}
		return normalizeMap(m)
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			nm, err := normalizeMap(item)
			if err != nil {
				return nil, err
			}
			out[i] = nm
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			ni, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = ni
		}
		return out, nil
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, nil
	default:
		return normalizeReflect(v)
	}
}

// normalizeReflect handles remaining slice and string-keyed map types.
func normalizeReflect(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			ni, err := normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = ni
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return normalizeMap(m)
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// normalizeUint rejects integers that do not fit int64 instead of
// changing their kind.
func normalizeUint(u uint64) (any, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("unsupported integer %d: exceeds int64 range", u)
	}
	return int64(u), nil
}
