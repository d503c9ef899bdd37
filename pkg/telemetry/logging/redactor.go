package logging

import (
	"regexp"
	"sort"
	"strings"

	"runbeam/harmony-validator/pkg/config"
)

// Mask replaces a fully redacted value.
const Mask = "***"

// Redactor masks secrets in log fields and in configuration values echoed
// back in validation errors.
type Redactor struct {
	patterns []*redactPattern
}

type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternBearerToken = "bearer_token"
	PatternAPIKey      = "api_key"
	PatternURLPassword = "url_password"
	PatternPrivateKey  = "private_key"
	PatternPassword    = "password"
)

var defaultPatterns = []struct {
	name        string
	regex       string
	replacement string
}{
	{PatternPrivateKey, `-----BEGIN [A-Z ]*PRIVATE KEY-----[\s\S]*?-----END [A-Z ]*PRIVATE KEY-----`, "-----PRIVATE KEY " + Mask + "-----"},
	{PatternBearerToken, `Bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer " + Mask},
	{PatternAPIKey, `\b(sk|pk|rk|ghp|gho|xox[abp])[-_][a-zA-Z0-9\-_]{8,}`, "$1-" + Mask},
	{PatternURLPassword, `([a-zA-Z][a-zA-Z0-9+.-]*://[^:/@\s]+):[^@\s]+@`, "$1:" + Mask + "@"},
	{PatternPassword, `(?i)(password|passwd|pwd|secret)\s*[:=]\s*[^\s,;]+`, "$1=" + Mask},
}

// sensitiveKeys are key fragments whose values are always masked.
var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"secret", "token", "api_key", "apikey",
	"authorization", "credential",
	"private_key", "privatekey",
	"passphrase",
}

// NewRedactor creates a Redactor with the built-in patterns followed by
// customPatterns. Custom patterns that fail to compile are skipped.
func NewRedactor(customPatterns []config.RedactPattern) *Redactor {
	r := &Redactor{}

	for _, p := range defaultPatterns {
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.name,
			regex:       regexp.MustCompile(p.regex),
			replacement: p.replacement,
		})
	}

	for _, p := range customPatterns {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		replacement := p.Replacement
		if replacement == "" {
			replacement = Mask
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: replacement,
		})
	}

	return r
}

// PatternNames returns the names of the active patterns, sorted.
func (r *Redactor) PatternNames() []string {
	names := make([]string, 0, len(r.patterns))
	for _, p := range r.patterns {
		names = append(names, p.name)
	}
	sort.Strings(names)
	return names
}

// RedactString applies every pattern to value in order.
func (r *Redactor) RedactString(value string) string {
	if r == nil || value == "" {
		return value
	}

	redacted := value
	for _, pattern := range r.patterns {
		redacted = pattern.regex.ReplaceAllString(redacted, pattern.replacement)
	}
	return redacted
}

// RedactArgs redacts variadic slog arguments (key1, value1, key2, value2, ...).
// Values of sensitive keys are masked; other strings go through the patterns.
func (r *Redactor) RedactArgs(args ...any) []any {
	if r == nil || len(args) == 0 {
		return args
	}

	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 1; i < len(redacted); i += 2 {
		if key, ok := redacted[i-1].(string); ok && IsSensitiveKey(key) {
			redacted[i] = maskValue(redacted[i])
			continue
		}
		if str, ok := redacted[i].(string); ok {
			redacted[i] = r.RedactString(str)
		}
	}

	return redacted
}

// RedactField redacts a configuration value found at a dotted field path
// such as "database.password" or "upstreams[0]". The last path segment
// decides whether the whole value is masked; lists and tables are walked.
func (r *Redactor) RedactField(path string, value any) any {
	if r == nil {
		return value
	}
	if IsSensitiveKey(lastSegment(path)) {
		return maskValue(value)
	}

	switch v := value.(type) {
	case string:
		return r.RedactString(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = r.RedactField(path, item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = r.RedactField(path+"."+key, item)
		}
		return out
	default:
		return value
	}
}

// IsSensitiveKey reports whether a key name indicates a secret.
func IsSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}

// lastSegment returns the final key of a field path, ignoring list indexes.
func lastSegment(path string) string {
	if i := strings.IndexByte(path, '['); i >= 0 {
		path = path[:i]
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func maskValue(value any) any {
	if s, ok := value.(string); ok && s == "" {
		return ""
	}
	return Mask
}
