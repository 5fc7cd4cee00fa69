package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   Formatter
	}{
		{FormatJSON, &JSONFormatter{}},
		{FormatYAML, &YAMLFormatter{}},
		{FormatTOML, &TOMLFormatter{}},
		{FormatTable, &TableFormatter{}},
		{"unknown", &TableFormatter{}}, // default to table
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format)
			if f == nil {
				t.Fatal("NewFormatter returned nil")
			}
			if got, want := typeName(f), typeName(tt.want); got != want {
				t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, want)
			}
		})
	}
}

func typeName(f Formatter) string {
	switch f.(type) {
	case *JSONFormatter:
		return "json"
	case *YAMLFormatter:
		return "yaml"
	case *TOMLFormatter:
		return "toml"
	case *TableFormatter:
		return "table"
	}
	return "?"
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "YAML", "toml", "Table"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) expected error")
	}
}

var layer = map[string]any{
	"server": map[string]any{
		"host": "localhost",
		"port": 8080,
	},
	"features": []any{"a", "b"},
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, layer); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["server"].(map[string]any)["host"] != "localhost" {
		t.Errorf("server.host = %v", got["server"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("JSON output should be indented")
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := &YAMLFormatter{}

	t.Run("mapping", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, layer); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{"server:\n  host: localhost", "port: 8080", "- a"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("struct slice uses json names", func(t *testing.T) {
		rows := []struct {
			Name string `json:"name"`
		}{{Name: "one"}}
		var buf bytes.Buffer
		if err := f.Format(&buf, rows); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if got := buf.String(); got != "- name: one\n" {
			t.Errorf("output = %q", got)
		}
	})
}

func TestTOMLFormatter_Format(t *testing.T) {
	f := &TOMLFormatter{}

	t.Run("mapping", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, layer); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{"[server]", "port = 8080", "localhost"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("non-mapping is wrapped", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, []any{"x"}); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.Contains(buf.String(), "items") {
			t.Errorf("output = %q, want items key", buf.String())
		}
	})
}
