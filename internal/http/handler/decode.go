package handler

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	gojson "github.com/goccy/go-json"

	"relatosapi/internal/model"
	"relatosapi/internal/validation"
)

// inputStructs maps the struct names goccy/go-json reports onto the JSON path of their fields.
var inputStructs = map[string]struct {
	typ    reflect.Type
	prefix string
}{
	"NewReport":     {reflect.TypeOf(model.NewReport{}), ""},
	"NewAttachment": {reflect.TypeOf(model.NewAttachment{}), "anexos."},
}

// typeMismatch reports a well-formed body whose field holds the wrong JSON type as a field-level
// validation error. Syntax errors and type errors not tied to a field return false.
func typeMismatch(err error) (*validation.RequestValidationError, bool) {
	var (
		field, value string
		typ          reflect.Type
	)

	var gerr *gojson.UnmarshalTypeError
	var serr *stdjson.UnmarshalTypeError
	switch {
	case errors.As(err, &gerr):
		field, value, typ = goccyFieldPath(gerr.Struct, gerr.Field), gerr.Value, gerr.Type
	case errors.As(err, &serr):
		field, value, typ = serr.Field, serr.Value, serr.Type
	default:
		return nil, false
	}
	if field == "" {
		return nil, false
	}

	want := "a different type"
	if typ != nil {
		want = jsonKind(typ)
	}
	return validation.NewFieldError(field, "type", fmt.Sprintf("%s must be %s, got %s", field, want, value)), true
}

// goccyFieldPath converts goccy's struct and Go field names into the JSON path encoding/json reports.
func goccyFieldPath(structName, goField string) string {
	if goField == "" {
		return ""
	}
	in, ok := inputStructs[structName]
	if !ok {
		return strings.ToLower(goField)
	}
	f, ok := in.typ.FieldByName(goField)
	if !ok {
		return strings.ToLower(goField)
	}
	return in.prefix + strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Bool:
		return "a boolean"
	default:
		return "a number"
	}
}
