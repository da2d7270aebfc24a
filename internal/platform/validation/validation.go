// Package validation decodes request bodies and checks them against struct
// tags. Failures carry raw field messages in the class-validator register
// ("title should not be empty") which the sanitizer turns into client text.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"scribe/internal/shared/failure"
)

const (
	MessageInvalidUsername = "Username can only contain letters, numbers, and underscores"
	MessageWeakPassword    = "Password must contain at least one lowercase letter, one uppercase letter, and one number"
	MessagePasswordsDiffer = "Passwords do not match"
	messageMalformedBody   = "request body must be valid JSON"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		var lower, upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= '0' && r <= '9':
				digit = true
			}
		}
		return lower && upper && digit
	})
	return v
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// Struct validates v and reports the first failing field as a validation
// failure.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return failure.Wrap(failure.KindValidation, err.Error(), err)
	}
	return failure.New(failure.KindValidation, fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "min":
		if fe.Param() == "1" && fe.Kind() == reflect.String {
			return field + " should not be empty"
		}
		return fmt.Sprintf("%s must be longer than or equal to %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
	case "username":
		return MessageInvalidUsername
	case "password_strength":
		return MessageWeakPassword
	case "eqfield":
		return MessagePasswordsDiffer
	default:
		return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
}

// DecodeJSON reads one JSON document from body into dst and validates it. An
// empty body is validated as an empty object.
func DecodeJSON(body io.Reader, dst any) error {
	if body != nil {
		if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return decodeFailure(dst, err)
		}
	}
	return Struct(dst)
}

func decodeFailure(dst any, err error) error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return failure.Wrap(failure.KindValidation, messageMalformedBody, err)
	}

	field := strings.SplitN(typeErr.Field, ".", 2)[0]
	targetIsSlice := typeErr.Type != nil && typeErr.Type.Kind() == reflect.Slice
	if kind, ok := fieldKind(dst, field); ok && kind == reflect.Slice && !targetIsSlice {
		return failure.Wrap(failure.KindValidation, "each value in "+field+" must be a string", err)
	}
	if targetIsSlice {
		return failure.Wrap(failure.KindValidation, field+" must be an array", err)
	}
	return failure.Wrap(failure.KindValidation, field+" must be a string", err)
}

func fieldKind(dst any, name string) (reflect.Kind, bool) {
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.Invalid, false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if jsonName(f) != name {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		return ft.Kind(), true
	}
	return reflect.Invalid, false
}
