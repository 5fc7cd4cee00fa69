//go:build !notoml

package loader

import (
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/v2"
)

func tomlHandler() Handler {
	return Handler{
		Format:    FormatTOML,
		Suffixes:  []string{".toml"},
		Library:   tomlLibrary,
		Available: true,
		parser: func(*Loader, string, []string) koanf.Parser {
			return toml.Parser()
		},
	}
}
