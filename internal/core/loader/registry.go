package loader

import (
	"slices"

	"github.com/knadh/koanf/v2"
)

// Format identifies a configuration file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// parserFunc builds the parser for one file. Formats that resolve
// directives relative to the file (YAML includes) need the loader, the
// file path and the chain of files currently being loaded.
type parserFunc func(ld *Loader, path string, chain []string) koanf.Parser

// Handler describes one format in the registry.
type Handler struct {
	Format    Format
	Suffixes  []string
	Library   string
	Available bool

	parser parserFunc
}

// Registry maps file suffixes to format handlers. It is read-only once built.
type Registry struct {
	handlers []Handler
	bySuffix map[string]int
}

var defaultRegistry = NewRegistry(jsonHandler(), yamlHandler(), tomlHandler())

// DefaultRegistry returns the registry of formats compiled into this build.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// NewRegistry builds a registry. Suffixes are matched exactly, including
// case; a suffix claimed twice belongs to the later handler.
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{
		handlers: make([]Handler, 0, len(handlers)),
		bySuffix: make(map[string]int),
	}
	for _, h := range handlers {
		h.Suffixes = slices.Clone(h.Suffixes)
		r.handlers = append(r.handlers, h)
		for _, s := range h.Suffixes {
			r.bySuffix[s] = len(r.handlers) - 1
		}
	}
	return r
}

// Lookup returns the handler for a suffix such as ".yaml".
func (r *Registry) Lookup(suffix string) (Handler, bool) {
	i, ok := r.bySuffix[suffix]
	if !ok {
		return Handler{}, false
	}
	return r.handlers[i], true
}

// Handlers returns all handlers in registration order.
func (r *Registry) Handlers() []Handler {
	return slices.Clone(r.handlers)
}

// Suffixes returns the suffixes registered for format.
func (r *Registry) Suffixes(format Format) []string {
	for _, h := range r.handlers {
		if h.Format == format {
			return slices.Clone(h.Suffixes)
		}
	}
	return nil
}

// Without returns a copy of the registry in which format is unavailable.
// Its suffixes stay registered, so loading such a file reports the missing
// support rather than an unknown suffix.
func (r *Registry) Without(format Format) *Registry {
	handlers := r.Handlers()
	for i := range handlers {
		if handlers[i].Format == format {
			handlers[i].Available = false
			handlers[i].parser = nil
		}
	}
	return NewRegistry(handlers...)
}
