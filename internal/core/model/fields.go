package model

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Field describes how a struct field is named in configuration.
type Field struct {
	Name  string // Go field name
	Key   string // configuration key
	Alias string // camelCase alias of Key
}

// Fields lists the configurable fields of a struct type, in declaration
// order. target may be a struct or a pointer to one.
func Fields(target any) ([]Field, error) {
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model: %T is not a struct", target)
	}

	var out []Field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := keyName(f)
		if key == "-" {
			continue
		}
		out = append(out, Field{Name: f.Name, Key: key, Alias: SnakeToCamel(key)})
	}
	return out, nil
}

// Dump converts a struct into a configuration layer keyed by field keys,
// or by their camelCase aliases when byAlias is set.
func Dump(src any, byAlias bool) (map[string]any, error) {
	out := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: TagName,
		Result:  &out,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(src); err != nil {
		return nil, err
	}
	if byAlias {
		out = aliasKeys(out)
	}
	return out, nil
}

func aliasKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			v = aliasKeys(sub)
		}
		out[SnakeToCamel(k)] = v
	}
	return out
}
