// Package validatex adapts go-playground/validator to the per-field error
// maps the form handlers redisplay. Field names are reported in lower camel
// case to match form attribute names.
package validatex

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors collects validation messages per field. The "base" key holds
// errors not tied to a single field.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		for _, msg := range msgs {
			parts = append(parts, field+" "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Add appends a message for a field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Struct validates s against its validate tags and returns the failures as
// FieldErrors, or nil when the struct is valid.
func Struct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe := FieldErrors{}
		fe.Add("base", err.Error())
		return fe
	}

	fe := FieldErrors{}
	for _, v := range verrs {
		fe.Add(lowerFirst(v.Field()), message(v))
	}
	return fe
}

func message(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "cannot be blank"
	case "min":
		return fmt.Sprintf("must have a minimum length of %s", v.Param())
	case "max":
		return fmt.Sprintf("must have a maximum length of %s", v.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(v.Param()), ", "))
	default:
		return fmt.Sprintf("is invalid (%s)", v.Tag())
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
