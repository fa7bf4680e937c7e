// Package validation checks request structs against their `validate` tags
// and reports the first failing field as an UNPROCESSABLE error whose message
// is safe to show to clients, e.g. "The phone number field is required.".
//
// Field names in messages come from the `label` tag or, without one, from the
// Go field name split into lower-case words.
package validation

import (
	"artisan/pkg/serrors"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// local Nigerian numbers, 0 followed by ten digits
	phonePattern    = regexp.MustCompile(`^0[0-9]{10}$`)           //nolint: gochecknoglobals
	fullnamePattern = regexp.MustCompile(`^[a-zA-Z]+\s[a-zA-Z]+$`) //nolint: gochecknoglobals

	validate = newValidator() //nolint: gochecknoglobals
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(label)

	for tag, fn := range map[string]validator.Func{
		"phone":    matches(phonePattern),
		"fullname": matches(fullnamePattern),
		"notblank": func(fl validator.FieldLevel) bool { return strings.TrimSpace(fl.Field().String()) != "" },
		"digits":   digits,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("could not register %s validation: %v", tag, err))
		}
	}

	return v
}

func matches(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool { return pattern.MatchString(fl.Field().String()) }
}

// digits=N accepts exactly N ASCII digits.
func digits(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	s := fl.Field().String()
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func label(f reflect.StructField) string {
	if l := f.Tag.Get("label"); l != "" {
		return l
	}

	return words(f.Name)
}

// words turns PhoneNumber into "phone number" and OTP into "otp".
func words(name string) string {
	runes := []rune(name)

	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Struct validates s. Errors other than a failed rule, such as passing a
// non-struct, are programming errors and come back as INTERNAL.
func Struct(s any) error {
	return explain(validate.Struct(s), "")
}

// Var validates a single value under the given field label.
func Var(fieldLabel string, value any, tag string) error {
	return explain(validate.Var(value, tag), fieldLabel)
}

func explain(err error, fieldLabel string) error {
	if err == nil {
		return nil
	}

	var failed validator.ValidationErrors
	if !errors.As(err, &failed) || len(failed) == 0 {
		return serrors.Wrap(serrors.ErrInternal, err, "could not validate request")
	}

	fe := failed[0]
	field := fe.Field()
	if fieldLabel != "" {
		field = fieldLabel
	}

	return serrors.Wrap(serrors.ErrUnprocessable, fe, "%s", message(field, fe))
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
		}

		return fmt.Sprintf("The %s field must have at least %s items.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
		}

		return fmt.Sprintf("The %s field must not have more than %s items.", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "digits":
		return fmt.Sprintf("The %s field must be %s digits.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field must match %s.", field, words(fe.Param()))
	case "number":
		return fmt.Sprintf("The %s field must be a positive integer.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field format is invalid.", field)
	}
}
