package envflat

import (
	"reflect"
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		prefix  string
		want    map[string]any
	}{
		{
			name:    "prefix stripped and nested",
			environ: []string{"MYAPP__A__B=1", "MYAPP__C=2", "OTHER=3"},
			prefix:  "MYAPP",
			want: map[string]any{
				"a": map[string]any{"b": "1"},
				"c": "2",
			},
		},
		{
			name:    "prefix matched case-insensitively",
			environ: []string{"myapp__Key=v"},
			prefix:  "MYAPP",
			want:    map[string]any{"key": "v"},
		},
		{
			name:    "prefix must be a whole segment",
			environ: []string{"MYAPPX__KEY=v", "MYAPP_KEY=v"},
			prefix:  "MYAPP",
			want:    map[string]any{},
		},
		{
			name:    "no prefix takes everything",
			environ: []string{"HOME=/root", "A__B=1"},
			prefix:  "",
			want: map[string]any{
				"home": "/root",
				"a":    map[string]any{"b": "1"},
			},
		},
		{
			name:    "empty values dropped",
			environ: []string{"MYAPP__A=", "MYAPP__B=x"},
			prefix:  "MYAPP",
			want:    map[string]any{"b": "x"},
		},
		{
			name:    "bare prefix skipped",
			environ: []string{"MYAPP=x", "MYAPP__=y"},
			prefix:  "MYAPP",
			want:    map[string]any{},
		},
		{
			name:    "values keep their case and equals signs",
			environ: []string{"MYAPP__DSN=User=Admin;Pass=X"},
			prefix:  "MYAPP",
			want:    map[string]any{"dsn": "User=Admin;Pass=X"},
		},
		{
			name:    "malformed entries ignored",
			environ: []string{"garbage", "MYAPP__OK=1"},
			prefix:  "MYAPP",
			want:    map[string]any{"ok": "1"},
		},
		{
			name:    "deep nesting",
			environ: []string{"P__A__B__C__D=deep"},
			prefix:  "P",
			want: map[string]any{
				"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": "deep"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.environ, tt.prefix)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	cb := Transform("APP")

	key, value := cb("APP__SERVER__PORT", "8080")
	if key != "server__port" {
		t.Errorf("key = %q, want %q", key, "server__port")
	}
	if value != "8080" {
		t.Errorf("value = %v, want %q", value, "8080")
	}

	if key, _ := cb("NOPE__X", "1"); key != "" {
		t.Errorf("unrelated variable key = %q, want empty", key)
	}
}

func TestProvider_Read(t *testing.T) {
	t.Setenv("ENVFLATTEST__SERVER__HOST", "example.org")
	t.Setenv("ENVFLATTEST__SERVER__PORT", "8080")
	t.Setenv("envflattest__debug", "true")

	got, err := NewProvider("ENVFLATTEST").Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := map[string]any{
		"server": map[string]any{"host": "example.org", "port": "8080"},
		"debug":  "true",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Read() = %#v, want %#v", got, want)
	}
}

func TestProvider_ReadBytes(t *testing.T) {
	if _, err := NewProvider("X").ReadBytes(); err == nil {
		t.Error("ReadBytes() expected error")
	}
	if _, err := NewSnapshotProvider(nil, "X").ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v, want %v", err, ErrReadBytesNotSupported)
	}
}

func TestSnapshotProvider_Read(t *testing.T) {
	p := NewSnapshotProvider([]string{"APP__A=1"}, "APP")
	got, err := p.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{"a": "1"}) {
		t.Errorf("Read() = %#v", got)
	}
}
