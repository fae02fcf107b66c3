package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NonFieldErrors is the key used for errors not tied to a single field.
const NonFieldErrors = "non_field_errors"

// FieldErrors maps a wire field name (dotted for nested fields) to a message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// FromBindingError turns an error returned by gin's ShouldBind* into field
// errors keyed by JSON names.
func FromBindingError(err error) FieldErrors {
	fields := FieldErrors{}

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var fieldErrs FieldErrors

	switch {
	case errors.Is(err, io.EOF):
		fields[NonFieldErrors] = "No data provided."
	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			fields[fieldPath(fe)] = message(fe)
		}
	case errors.As(err, &fieldErrs):
		return fieldErrs
	case errors.As(err, &typeErr):
		name := typeErr.Field
		if name == "" {
			name = NonFieldErrors
		}
		fields[name] = fmt.Sprintf("Expected %s, received %s.", typeErr.Type.String(), typeErr.Value)
	case errors.As(err, &syntaxErr):
		fields[NonFieldErrors] = "JSON parse error: " + syntaxErr.Error()
	default:
		fields[NonFieldErrors] = err.Error()
	}

	return fields
}

// fieldPath drops the top-level struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return "This field may not be blank."
			}
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "datetime":
		return "Date has wrong format. Use YYYY-MM-DD."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return fe.Error()
	}
}
