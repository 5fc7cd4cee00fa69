package output

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Format represents the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatTable}

// ParseFormat validates a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unknown output format %q", s)
	}
	return f, nil
}

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates a formatter for the given format. Unknown formats
// produce a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTOML:
		return &TOMLFormatter{}
	default:
		return &TableFormatter{}
	}
}
