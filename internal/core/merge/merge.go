// Package merge implements the deep merge used to combine configuration layers.
//
// Layers are plain map[string]any trees as produced by the format parsers.
// Later layers take precedence: mappings present on both sides are merged
// key by key, every other value (scalars, sequences, nil, or a mapping
// meeting a non-mapping) is replaced wholesale.
package merge

import (
	"github.com/knadh/koanf/maps"
)

// Merge deep-merges layers from lowest to highest precedence and returns a
// new mapping. The inputs are never mutated and the result shares no
// references with them.
//
// Merge() returns an empty, non-nil mapping. Merge(a) returns a deep copy of a.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		// maps.Merge aliases values of its source, so each layer is copied first.
		maps.Merge(Clone(layer), out)
	}
	return out
}

// Clone returns a deep copy of a layer. A nil layer yields an empty mapping.
func Clone(layer map[string]any) map[string]any {
	if layer == nil {
		return make(map[string]any)
	}
	return maps.Copy(layer)
}

// Set writes value at the key path in layer, creating intermediate mappings.
// A non-mapping value found on the way is replaced by a mapping, matching the
// replacement rule of Merge.
func Set(layer map[string]any, value any, path ...string) {
	if len(path) == 0 {
		return
	}
	cur := layer
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}
