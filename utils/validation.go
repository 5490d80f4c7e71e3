package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"blogapi/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgInvalidInteger  = "A valid integer is required."
	msgInvalidString   = "Not a valid string."
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	setupOnce       sync.Once
)

// SetupValidator teaches gin's validator engine the JSON field names and the
// custom tags used by request structs. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

// BindJSON decodes the request body into obj and validates it. A missing or
// empty body is treated as an empty object so that every required field gets
// reported. A mistyped field does not hide failures on the other fields. The
// returned error is either *apperrors.ValidationError or apperrors.ErrParse.
func BindJSON(c *gin.Context, obj any) error {
	SetupValidator()

	raw, err := c.GetRawData()
	if err != nil {
		return apperrors.ErrParse
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	err = binding.JSON.BindBody(raw, obj)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return TranslateBindError(err)
	}

	// encoding/json keeps decoding past a type mismatch, so the other fields
	// are populated and can still be validated.
	out := typeErrors(raw, obj)
	if out.Empty() {
		out.Merge(translateTypeError(typeErr))
	}
	if verr := binding.Validator.ValidateStruct(obj); verr != nil {
		if v, ok := apperrors.AsValidation(TranslateBindError(verr)); ok {
			for field, messages := range v.Fields {
				if _, mistyped := out.Fields[field]; mistyped {
					continue
				}
				for _, m := range messages {
					out.Add(field, m)
				}
			}
		}
	}
	return out
}

// typeErrors decodes each top-level field of raw on its own and reports every
// field whose JSON value does not fit the Go type.
func typeErrors(raw []byte, obj any) *apperrors.ValidationError {
	out := apperrors.NewValidationError()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out
	}

	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return out
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		value, ok := fields[name]
		if !ok {
			continue
		}
		err := json.Unmarshal(value, reflect.New(f.Type).Interface())
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			out.Add(name, typeMessage(typeErr.Type))
		}
	}
	return out
}

func translateTypeError(typeErr *json.UnmarshalTypeError) *apperrors.ValidationError {
	return apperrors.FieldError(typeErr.Field, typeMessage(typeErr.Type))
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return msgInvalidInteger
	case reflect.String:
		return msgInvalidString
	default:
		return fmt.Sprintf("Incorrect type. Expected %s.", t.String())
	}
}

// TranslateBindError maps decoding and validator errors to API errors.
func TranslateBindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := apperrors.NewValidationError()
		for _, fe := range verrs {
			out.Add(fe.Field(), messageFor(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return apperrors.FieldError(apperrors.NonFieldErrors, apperrors.MsgNotObject)
		}
		return translateTypeError(typeErr)
	}

	return apperrors.ErrParse
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return apperrors.MsgRequired
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return apperrors.MsgBlank
			}
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "notblank":
		return apperrors.MsgBlank
	case "username":
		return msgInvalidUsername
	default:
		return apperrors.MsgInvalid
	}
}
