package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromBinding converts a gin binding error for target into field messages keyed by json names.
// It reports false for errors that are not about a single field, such as malformed JSON.
func FromBinding(err error, target interface{}) (*Error, bool) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return nil, false
		}
		return FieldError(typeErr.Field, typeMessage(typeErr.Type), nil), true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, false
	}

	verr := New()
	for _, fe := range fieldErrs {
		id, data := tagMessage(fe)
		verr.Add(jsonName(target, fe.StructField()), id, data)
	}
	return verr, true
}

func tagMessage(fe validator.FieldError) (string, map[string]interface{}) {
	switch fe.Tag() {
	case "required":
		return MsgFieldRequired, nil
	case "email":
		return MsgFieldInvalidEmail, nil
	case "max":
		return MsgFieldMaxLength, map[string]interface{}{"Max": fe.Param()}
	case "min":
		return MsgFieldMinLength, map[string]interface{}{"Min": fe.Param()}
	default:
		return MsgFieldInvalidString, nil
	}
}

func typeMessage(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return MsgFieldInvalidString
	}
	switch t.Kind() {
	case reflect.Bool:
		return MsgFieldInvalidBoolean
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return MsgFieldInvalidInteger
	default:
		return MsgFieldInvalidString
	}
}

func jsonName(target interface{}, structField string) string {
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return structField
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return structField
	}
	return name
}
