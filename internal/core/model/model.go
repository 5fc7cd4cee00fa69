// Package model decodes merged configuration layers into typed structs.
//
// Struct fields are bound with the `config` tag. Each key may also be given
// in its camelCase alias, so `config:"http_status_code"` accepts both
// "http_status_code" and "httpStatusCode". After decoding, struct targets
// are checked against their `validate` tags.
package model

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// TagName is the struct tag holding configuration keys.
const TagName = "config"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report configuration keys in validation errors rather than Go names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := keyName(f)
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode decodes input into target, which must be a non-nil pointer.
// Values are converted loosely ("8080" decodes into an int field) since
// environment layers carry only strings. Decode and validation errors are
// returned unchanged; validation errors are validator.ValidationErrors.
func Decode(input map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		MatchName:        matchName,
		Result:           target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return err
	}
	return Validate(target)
}

// Validate checks the `validate` tags of a struct or pointer to struct.
// Other values are accepted as is.
func Validate(target any) error {
	v := reflect.ValueOf(target)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return validate.Struct(v.Interface())
}

func matchName(mapKey, fieldName string) bool {
	return strings.EqualFold(mapKey, fieldName) || mapKey == SnakeToCamel(fieldName)
}

// SnakeToCamel converts a snake_case key to its camelCase alias. The first
// word is lower-cased and later words are capitalized; empty words vanish.
// A leading underscore therefore yields an upper-case first letter.
//
//	hello_world       -> helloWorld
//	HTTP_STATUS_CODE  -> httpStatusCode
//	_hello_world      -> HelloWorld
func SnakeToCamel(s string) string {
	first, rest, _ := strings.Cut(s, "_")
	var b strings.Builder
	b.WriteString(strings.ToLower(first))
	for _, word := range strings.Split(rest, "_") {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(strings.ToLower(word[size:]))
	}
	return b.String()
}

// keyName returns the configuration key of a struct field.
func keyName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get(TagName), ",")
	if name == "" {
		return f.Name
	}
	return name
}
