package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

type row struct {
	Name     string    `json:"name"`
	Suffixes []string  `json:"suffixes"`
	Enabled  bool      `json:"enabled"`
	Count    int       `json:"count"`
	At       time.Time `json:"at"`
	Secret   string    `json:"secret" table:"-"`
	GoField  string
	private  string
}

// fields formats data and splits the output into whitespace-separated
// cells per line.
func fields(t *testing.T, f *TableFormatter, data any) [][]string {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	var out [][]string
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if line != "" {
			out = append(out, strings.Fields(line))
		}
	}
	return out
}

func TestTableFormatter_Format(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := []row{
		{Name: "yaml", Suffixes: []string{".yml", ".yaml"}, Enabled: true, Count: 2, At: at, Secret: "s", GoField: "g", private: "p"},
		{Name: "toml"},
	}

	tests := []struct {
		name string
		f    TableFormatter
		data any
		want [][]string
	}{
		{
			name: "table",
			data: &Table{Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}},
			want: [][]string{{"A", "B"}, {"1", "2"}},
		},
		{
			name: "table value without headers",
			f:    TableFormatter{NoHeaders: true},
			data: Table{Headers: []string{"A"}, Rows: [][]string{{"x"}}},
			want: [][]string{{"x"}},
		},
		{
			name: "slice of structs",
			data: rows,
			want: [][]string{
				{"NAME", "SUFFIXES", "ENABLED", "COUNT", "AT", "GO_FIELD"},
				{"yaml", ".yml,.yaml", "true", "2", "2024-05-01T12:00:00Z", "g"},
				{"toml", "-", "false", "0", "-", "-"},
			},
		},
		{
			name: "slice of pointers",
			data: []*row{&rows[1], nil},
			want: [][]string{
				{"NAME", "SUFFIXES", "ENABLED", "COUNT", "AT", "GO_FIELD"},
				{"toml", "-", "false", "0", "-", "-"},
				{"-", "-", "-", "-", "-", "-"},
			},
		},
		{
			name: "slice of scalars",
			data: []int{1, 2},
			want: [][]string{{"VALUE"}, {"1"}, {"2"}},
		},
		{
			name: "empty slice",
			data: []row{},
			want: nil,
		},
		{
			name: "struct",
			data: &rows[0],
			want: [][]string{
				{"FIELD", "VALUE"},
				{"name", "yaml"},
				{"suffixes", ".yml,.yaml"},
				{"enabled", "true"},
				{"count", "2"},
				{"at", "2024-05-01T12:00:00Z"},
				{"GoField", "g"},
			},
		},
		{
			name: "layer",
			data: map[string]any{
				"server":   map[string]any{"port": 8080, "host": "localhost"},
				"debug":    true,
				"features": []any{"a", "b"},
				"empty":    map[string]any{},
				"ratio":    0.25,
				"nothing":  nil,
			},
			want: [][]string{
				{"KEY", "VALUE"},
				{"debug", "true"},
				{"empty", "{}"},
				{"features", `["a","b"]`},
				{"nothing", "null"},
				{"ratio", "0.25"},
				{"server.host", "localhost"},
				{"server.port", "8080"},
			},
		},
		{
			name: "nil",
			data: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(t, &tt.f, tt.data)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Format() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTableFormatter_Format_Scalar(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"plain", "plain\n"},
		{8080, "8080\n"},
		{int64(7), "7\n"},
		{1.5, "1.5\n"},
		{false, "false\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := (&TableFormatter{}).Format(&buf, tt.in); err != nil {
			t.Fatalf("Format(%v) error = %v", tt.in, err)
		}
		if buf.String() != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, buf.String(), tt.want)
		}
	}
}

func TestTableFormatter_Format_FallbackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "{\n  \"a\": 1\n}\n" {
		t.Errorf("Format() = %q, want indented JSON", buf.String())
	}

	if err := (&TableFormatter{}).Format(&buf, make(chan int)); err == nil {
		t.Error("Format(chan) expected an encoding error")
	}
}

func TestTable_Write_Alignment(t *testing.T) {
	tbl := &Table{Headers: []string{"KEY", "VALUE"}}
	tbl.AddRow("a", "1")
	tbl.AddRow("longer", "2")

	var buf bytes.Buffer
	if err := tbl.Write(&buf, true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "KEY     VALUE\na       1\nlonger  2\n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}

func TestHeader(t *testing.T) {
	tests := map[string]string{
		"name":       "NAME",
		"go_version": "GO_VERSION",
		"GoVersion":  "GO_VERSION",
		"ReloadID":   "RELOAD_ID",
	}
	for in, want := range tests {
		if got := header(in); got != want {
			t.Errorf("header(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCell_Collections(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{[]int{1, 2, 3}, "[1,2,3]"},
		{map[string]int{"a": 1}, `{"a":1}`},
		{map[string]int{}, "-"},
		{uint(9), "9"},
	}
	for _, tt := range tests {
		if got := cell(reflect.ValueOf(tt.in)); got != tt.want {
			t.Errorf("cell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
