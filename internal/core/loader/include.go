//go:build !noyaml

package loader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.yaml.in/yaml/v3"

	"github.com/azimuth-cloud/configomatic/internal/core/merge"
)

// IncludeTag is the YAML tag that marks an include directive.
const IncludeTag = "!include"

// includeParser is a koanf.Parser for YAML that resolves !include
// directives relative to the file being parsed.
type includeParser struct {
	loader *Loader
	path   string
	chain  []string
}

// Unmarshal parses b, replacing every include directive by the merged
// contents of the files it selects.
func (p *includeParser) Unmarshal(b []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	if err := p.resolve(&doc); err != nil {
		return nil, err
	}

	var out map[string]any
	if err := doc.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes a layer as YAML.
func (p *includeParser) Marshal(m map[string]any) ([]byte, error) {
	return yaml.Marshal(m)
}

// resolve walks the node tree and rewrites include nodes in place. Aliases
// point at the same node, so they observe the resolved value.
func (p *includeParser) resolve(n *yaml.Node) error {
	if n.Tag == IncludeTag {
		if n.Kind != yaml.ScalarNode {
			return fmt.Errorf("%s: line %d: %s expects a comma-separated list of patterns", p.path, n.Line, IncludeTag)
		}
		merged, err := p.loader.include(n.Value, filepath.Dir(p.path), p.chain)
		if err != nil {
			return err
		}
		var repl yaml.Node
		if err := repl.Encode(merged); err != nil {
			return err
		}
		repl.Anchor = n.Anchor
		repl.Line, repl.Column = n.Line, n.Column
		*n = repl
		return nil
	}
	if n.Kind == yaml.AliasNode {
		return nil
	}
	for _, c := range n.Content {
		if err := p.resolve(c); err != nil {
			return err
		}
	}
	return nil
}

// include loads and merges the files selected by a directive value.
func (ld *Loader) include(value, dir string, chain []string) (map[string]any, error) {
	paths, err := ld.IncludePaths(value, dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return make(map[string]any), nil
	}

	layers := make([]map[string]any, 0, len(paths))
	for _, path := range paths {
		layer, err := ld.load(path, chain)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	ld.logger.Debug("include resolved",
		"directive", value,
		"files", len(paths),
	)
	return merge.Merge(layers...), nil
}

// IncludePaths expands a directive value into the sorted, canonical paths
// it selects. Relative patterns are taken relative to dir.
func (ld *Loader) IncludePaths(value, dir string) ([]string, error) {
	var incl, excl []string
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(tok, "!"); ok {
			if rest = strings.TrimSpace(rest); rest != "" {
				excl = append(excl, rest)
			}
			continue
		}
		incl = append(incl, tok)
	}

	selected, err := expand(incl, dir)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, nil
	}
	excluded, err := expand(excl, dir)
	if err != nil {
		return nil, err
	}
	for path := range excluded {
		delete(selected, path)
	}

	out := make([]string, 0, len(selected))
	for path := range selected {
		out = append(out, path)
	}
	slices.Sort(out)
	return out, nil
}

// expand globs each pattern and returns the canonical paths of the matched
// regular files.
func expand(patterns []string, dir string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(escapeMeta(dir), pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			out[canonical(m)] = struct{}{}
		}
	}
	return out, nil
}

// escapeMeta quotes glob metacharacters in a literal directory prefix.
// Backslash is a path separator on Windows, so nothing can be escaped there.
func escapeMeta(dir string) string {
	if filepath.Separator == '\\' {
		return dir
	}
	var b strings.Builder
	for _, r := range dir {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
