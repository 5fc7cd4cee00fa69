// Package envflat turns environment variables into a nested configuration layer.
//
// A variable name is split on "__" into segments. When a prefix is set the
// first segment must match it (case-insensitively) and is dropped. The
// remaining segments, lower-cased, form the key path of the value:
//
//	MYAPP__DATABASE__HOST=db  ->  {"database": {"host": "db"}}
//
// Variables with an empty value are ignored.
package envflat

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/azimuth-cloud/configomatic/internal/core/merge"
)

// Delimiter separates nesting levels in variable names.
const Delimiter = "__"

// Transform returns the key callback used for prefix. It maps a variable to
// its delimited, lower-cased key path, or to "" when the variable must be
// skipped.
func Transform(prefix string) func(key, value string) (string, any) {
	return func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		parts := strings.Split(key, Delimiter)
		if prefix != "" {
			if !strings.EqualFold(parts[0], prefix) {
				return "", nil
			}
			parts = parts[1:]
		}
		if len(parts) == 0 {
			return "", nil
		}
		for i, p := range parts {
			parts[i] = strings.ToLower(p)
		}
		path := strings.Join(parts, Delimiter)
		if path == "" {
			return "", nil
		}
		return path, value
	}
}

// Flatten builds a layer from an environment snapshot in os.Environ form.
func Flatten(environ []string, prefix string) map[string]any {
	cb := Transform(prefix)
	flat := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if key, v := cb(name, value); key != "" {
			flat[key] = v
		}
	}
	return nest(flat)
}

// nest expands delimited keys into nested mappings. Unlike maps.Unflatten it
// replaces a scalar found on an intermediate path rather than writing the
// leaf at the wrong level.
func nest(flat map[string]any) map[string]any {
	out := make(map[string]any, len(flat))
	for k, v := range flat {
		merge.Set(out, v, strings.Split(k, Delimiter)...)
	}
	return out
}

// Provider reads the live process environment as a koanf.Provider.
type Provider struct {
	env *env.Env
}

var _ koanf.Provider = (*Provider)(nil)

// NewProvider returns a Provider for variables under prefix.
func NewProvider(prefix string) *Provider {
	// The env provider's own prefix filter is case-sensitive, so filtering is
	// left to the callback.
	return &Provider{env: env.ProviderWithValue("", "", Transform(prefix))}
}

// ReadBytes is not supported.
func (p *Provider) ReadBytes() ([]byte, error) {
	return p.env.ReadBytes()
}

// Read returns the nested environment layer.
func (p *Provider) Read() (map[string]any, error) {
	flat, err := p.env.Read()
	if err != nil {
		return nil, err
	}
	return nest(flat), nil
}

// SnapshotProvider is a koanf.Provider over a fixed environment snapshot.
type SnapshotProvider struct {
	environ []string
	prefix  string
}

// NewSnapshotProvider returns a provider reading environ instead of the
// process environment.
func NewSnapshotProvider(environ []string, prefix string) *SnapshotProvider {
	return &SnapshotProvider{environ: environ, prefix: prefix}
}

// ReadBytes is not supported.
func (p *SnapshotProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the nested environment layer.
func (p *SnapshotProvider) Read() (map[string]any, error) {
	return Flatten(p.environ, p.prefix), nil
}
