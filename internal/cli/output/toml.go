package output

import (
	"io"

	"github.com/knadh/koanf/parsers/toml/v2"
)

// TOMLFormatter formats data as TOML. TOML documents are tables, so
// results that are not mappings are placed under an "items" key.
type TOMLFormatter struct{}

// Format formats data as TOML.
func (f *TOMLFormatter) Format(w io.Writer, data any) error {
	v, err := generic(data)
	if err != nil {
		return err
	}

	m, ok := v.(map[string]any)
	if !ok {
		m = map[string]any{"items": v}
	}
	b, err := toml.Parser().Marshal(m)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
