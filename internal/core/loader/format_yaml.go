//go:build !noyaml

package loader

import "github.com/knadh/koanf/v2"

func yamlHandler() Handler {
	return Handler{
		Format:    FormatYAML,
		Suffixes:  []string{".yml", ".yaml"},
		Library:   yamlLibrary,
		Available: true,
		parser: func(ld *Loader, path string, chain []string) koanf.Parser {
			return &includeParser{loader: ld, path: path, chain: chain}
		},
	}
}
