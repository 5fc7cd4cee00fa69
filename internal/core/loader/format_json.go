package loader

import (
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"
)

func jsonHandler() Handler {
	return Handler{
		Format:    FormatJSON,
		Suffixes:  []string{".json"},
		Library:   "encoding/json",
		Available: true,
		parser: func(*Loader, string, []string) koanf.Parser {
			return json.Parser()
		},
	}
}
