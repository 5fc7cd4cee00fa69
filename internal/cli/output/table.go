package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
	"unicode"

	"github.com/knadh/koanf/maps"
)

// TableFormatter renders data as aligned columns. Configuration mappings
// become KEY/VALUE rows of dotted paths, slices of structs become one row
// per element and a single struct becomes FIELD/VALUE rows. Anything else
// falls back to indented JSON.
type TableFormatter struct {
	NoHeaders bool
}

// Format writes data as a table.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}
	t, ok := tableFor(data)
	if !ok {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return t.Write(w, !f.NoHeaders)
}

func tableFor(data any) (*Table, bool) {
	switch d := data.(type) {
	case *Table:
		return d, true
	case Table:
		return &d, true
	case map[string]any:
		return layerTable(d), true
	}
	if s, ok := scalarString(data); ok {
		return &Table{Rows: [][]string{{s}}}, true
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return sliceTable(v), true
	case reflect.Struct:
		return structTable(v), true
	}
	return nil, false
}

// layerTable lists a configuration mapping by sorted dotted key path.
func layerTable(m map[string]any) *Table {
	flat, _ := maps.Flatten(m, nil, ".")
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{Headers: []string{"KEY", "VALUE"}}
	for _, k := range keys {
		t.AddRow(k, cellString(flat[k]))
	}
	return t
}

func sliceTable(v reflect.Value) *Table {
	t := &Table{}
	if v.Len() == 0 {
		return t
	}

	et := v.Type().Elem()
	if et.Kind() == reflect.Pointer {
		et = et.Elem()
	}
	if et.Kind() != reflect.Struct {
		t.Headers = []string{"VALUE"}
		for i := 0; i < v.Len(); i++ {
			t.AddRow(cell(v.Index(i)))
		}
		return t
	}

	cols := columns(et)
	for _, c := range cols {
		t.Headers = append(t.Headers, header(c.name))
	}
	for i := 0; i < v.Len(); i++ {
		elem := reflect.Indirect(v.Index(i))
		row := make([]string, len(cols))
		for j, c := range cols {
			if elem.IsValid() {
				row[j] = cell(elem.Field(c.index))
			} else {
				row[j] = "-"
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func structTable(v reflect.Value) *Table {
	t := &Table{Headers: []string{"FIELD", "VALUE"}}
	for _, c := range columns(v.Type()) {
		t.AddRow(c.name, cell(v.Field(c.index)))
	}
	return t
}

type column struct {
	name  string
	index int
}

// columns lists the exported fields of t, named by their json tag. Fields
// tagged table:"-" are skipped.
func columns(t reflect.Type) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("table") == "-" {
			continue
		}
		name := f.Name
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		cols = append(cols, column{name: name, index: i})
	}
	return cols
}

// header turns a field name into a column header: go_version and
// GoVersion both become GO_VERSION.
func header(name string) string {
	var b strings.Builder
	prev := rune(0)
	for _, r := range name {
		if unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
		prev = r
	}
	return b.String()
}

// cell renders one struct field or slice element. Empty values show as "-".
func cell(v reflect.Value) string {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "-"
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return "-"
	}
	if t, ok := v.Interface().(time.Time); ok {
		if t.IsZero() {
			return "-"
		}
		return t.Format(time.RFC3339)
	}

	switch v.Kind() {
	case reflect.String:
		if v.Len() == 0 {
			return "-"
		}
		return v.String()
	case reflect.Slice, reflect.Array, reflect.Map:
		if v.Len() == 0 {
			return "-"
		}
		if v.Kind() != reflect.Map && v.Type().Elem().Kind() == reflect.String {
			parts := make([]string, v.Len())
			for i := range parts {
				parts[i] = v.Index(i).String()
			}
			return strings.Join(parts, ",")
		}
		return cellString(v.Interface())
	default:
		return fmt.Sprint(v.Interface())
	}
}

// scalarString renders strings, numbers and booleans.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	}
	return "", false
}

// cellString renders a leaf value of a layer. Sequences and empty mappings
// are shown as compact JSON.
func cellString(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := scalarString(v); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Table is rows of cells under optional headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Write writes the table with columns separated by two spaces.
func (t *Table) Write(w io.Writer, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
