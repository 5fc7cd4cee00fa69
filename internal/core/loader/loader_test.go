//go:build !noyaml && !notoml

package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadFile_Formats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    map[string]any
	}{
		{
			name:    "json",
			file:    "config.json",
			content: `{"server": {"port": 8080, "tags": ["a", "b"]}}`,
			want: map[string]any{
				"server": map[string]any{"port": float64(8080), "tags": []any{"a", "b"}},
			},
		},
		{
			name:    "yaml",
			file:    "config.yaml",
			content: "server:\n  port: 8080\n  tags: [a, b]\n",
			want: map[string]any{
				"server": map[string]any{"port": 8080, "tags": []any{"a", "b"}},
			},
		},
		{
			name:    "yml",
			file:    "config.yml",
			content: "key: value\n",
			want:    map[string]any{"key": "value"},
		},
		{
			name:    "toml",
			file:    "config.toml",
			content: "[server]\nport = 8080\nname = \"x\"\n",
			want: map[string]any{
				"server": map[string]any{"port": int64(8080), "name": "x"},
			},
		},
		{
			name:    "empty yaml",
			file:    "empty.yaml",
			content: "",
			want:    map[string]any{},
		},
		{
			name:    "yaml comments only",
			file:    "comments.yaml",
			content: "# nothing here\n",
			want:    map[string]any{},
		},
		{
			name:    "json null",
			file:    "null.json",
			content: "null",
			want:    map[string]any{},
		},
		{
			name:    "empty toml",
			file:    "empty.toml",
			content: "",
			want:    map[string]any{},
		},
		{
			name:    "yaml non-string keys",
			file:    "keys.yaml",
			content: "ports:\n  80: http\n  443: https\n",
			want: map[string]any{
				"ports": map[string]any{"80": "http", "443": "https"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadFile() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestLoadFile_NoSuitableLoader(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"config.unknown", "config.JSON", "config.Yaml", "config"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name, "{}")
			_, err := LoadFile(path)
			if !errors.Is(err, ErrNoSuitableLoader) {
				t.Fatalf("LoadFile() error = %v, want ErrNoSuitableLoader", err)
			}
			var nsl *NoSuitableLoaderError
			if !errors.As(err, &nsl) {
				t.Fatalf("LoadFile() error type = %T", err)
			}
			if nsl.Suffix != filepath.Ext(name) {
				t.Errorf("Suffix = %q, want %q", nsl.Suffix, filepath.Ext(name))
			}
		})
	}

	err := (&NoSuitableLoaderError{Suffix: ".unknown"}).Error()
	if err != "no loader for suffix .unknown" {
		t.Errorf("Error() = %q", err)
	}
}

func TestLoadFile_RequiredPackageNotAvailable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		format Format
		file   string
	}{
		{FormatYAML, "config.yaml"},
		{FormatYAML, "config.yml"},
		{FormatTOML, "config.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			ld := New(WithRegistry(DefaultRegistry().Without(tt.format)))

			// The availability check comes before the file is read.
			_, err := ld.LoadFile(filepath.Join(dir, "missing", tt.file))
			if !errors.Is(err, ErrRequiredPackageNotAvailable) {
				t.Fatalf("LoadFile() error = %v, want ErrRequiredPackageNotAvailable", err)
			}
			var rpna *RequiredPackageNotAvailableError
			if !errors.As(err, &rpna) || rpna.Format != tt.format {
				t.Errorf("LoadFile() error = %#v", err)
			}
		})
	}
}

func TestLoadFile_ParseErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"empty json", "empty.json", ""},
		{"invalid json", "bad.json", "{"},
		{"json array", "array.json", "[1, 2]"},
		{"invalid yaml", "bad.yaml", "key: [unclosed\n"},
		{"yaml scalar document", "scalar.yaml", "just a string\n"},
		{"invalid toml", "bad.toml", "key = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() expected parse error")
			}
		})
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoader_Observer(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{"a": 1}`)

	var seen []Format
	ld := New(WithObserver(func(p string, f Format) {
		if p != path {
			t.Errorf("observer path = %q, want %q", p, path)
		}
		seen = append(seen, f)
	}))

	if _, err := ld.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !reflect.DeepEqual(seen, []Format{FormatJSON}) {
		t.Errorf("observer formats = %v", seen)
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	for suffix, want := range map[string]Format{
		".json": FormatJSON,
		".yml":  FormatYAML,
		".yaml": FormatYAML,
		".toml": FormatTOML,
	} {
		h, ok := r.Lookup(suffix)
		if !ok || h.Format != want {
			t.Errorf("Lookup(%q) = %v, %v; want %v", suffix, h.Format, ok, want)
		}
	}

	if _, ok := r.Lookup(".ini"); ok {
		t.Error("Lookup(.ini) should fail")
	}

	if got := r.Suffixes(FormatYAML); !reflect.DeepEqual(got, []string{".yml", ".yaml"}) {
		t.Errorf("Suffixes(yaml) = %v", got)
	}

	if n := len(r.Handlers()); n != 3 {
		t.Errorf("Handlers() len = %d, want 3", n)
	}
}

func TestRegistry_WithoutLeavesOriginal(t *testing.T) {
	r := DefaultRegistry()
	stripped := r.Without(FormatTOML)

	h, _ := stripped.Lookup(".toml")
	if h.Available {
		t.Error("Without() handler still available")
	}
	h, _ = r.Lookup(".toml")
	if !h.Available {
		t.Error("Without() modified the original registry")
	}
}
