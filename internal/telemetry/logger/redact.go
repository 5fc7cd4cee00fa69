package logger

import (
	"log/slog"
	"strings"
	"unicode"
)

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// sensitiveWords mark a key as sensitive wherever they appear as a word.
var sensitiveWords = map[string]bool{
	"password":    true,
	"passwd":      true,
	"passphrase":  true,
	"secret":      true,
	"secrets":     true,
	"token":       true,
	"tokens":      true,
	"credential":  true,
	"credentials": true,
	"auth":        true,
	"bearer":      true,
	"dsn":         true,
	"apikey":      true,
}

// keyQualifiers make a following "key" word sensitive, as in api_key or
// privateKey. A bare "key" is not.
var keyQualifiers = map[string]bool{
	"api":        true,
	"private":    true,
	"secret":     true,
	"access":     true,
	"signing":    true,
	"encryption": true,
}

// IsSensitiveKey reports whether a key name suggests secret content. Keys
// are split into words at punctuation and lower-to-upper case changes, so
// that "author" or "monkey" do not match.
func IsSensitiveKey(key string) bool {
	words := keyWords(key)
	for i, w := range words {
		if sensitiveWords[w] {
			return true
		}
		if w == "key" && i > 0 && keyQualifiers[words[i-1]] {
			return true
		}
	}
	return false
}

func keyWords(key string) []string {
	var (
		words []string
		cur   strings.Builder
		prev  rune
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range key {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur.WriteRune(unicode.ToLower(r))
		default:
			cur.WriteRune(unicode.ToLower(r))
		}
		prev = r
	}
	flush()
	return words
}

// redactSensitive redacts string attributes whose key suggests secret
// content, descending into groups.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if a.Value.String() != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// RedactLayer returns a copy of a configuration layer in which non-empty
// scalar values under sensitive keys are replaced by a placeholder.
// Sequences and nested mappings are walked; the input is not modified.
func RedactLayer(layer map[string]any) map[string]any {
	out := make(map[string]any, len(layer))
	for k, v := range layer {
		out[k] = redactValue(IsSensitiveKey(k), v)
	}
	return out
}

func redactValue(sensitive bool, v any) any {
	switch val := v.(type) {
	case map[string]any:
		return RedactLayer(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = redactValue(sensitive, e)
		}
		return out
	case nil:
		return nil
	case string:
		if sensitive && val != "" {
			return redactedValue
		}
		return val
	default:
		if sensitive {
			return redactedValue
		}
		return val
	}
}
