// Package apperrors defines the request-scoped failures the API reports and
// the HTTP status each one maps to.
package apperrors

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

const (
	CodeNotAuthenticated     = "not_authenticated"
	CodeAuthenticationFailed = "authentication_failed"
	CodePermissionDenied     = "permission_denied"
	CodeNotFound             = "not_found"
	CodeParseError           = "parse_error"
)

// APIError is a failure rendered as {"detail": ..., "code": ...}.
type APIError struct {
	Status int
	Code   string
	Detail string
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Detail
}

// Is matches on code so that errors.Is(err, ErrNotFound) works for any
// APIError carrying the same code.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

var (
	ErrNotAuthenticated = &APIError{
		Status: http.StatusForbidden,
		Code:   CodeNotAuthenticated,
		Detail: "Authentication credentials were not provided.",
	}
	ErrAuthenticationFailed = &APIError{
		Status: http.StatusForbidden,
		Code:   CodeAuthenticationFailed,
		Detail: "Incorrect authentication credentials.",
	}
	ErrPermissionDenied = &APIError{
		Status: http.StatusForbidden,
		Code:   CodePermissionDenied,
		Detail: "You do not have permission to perform this action.",
	}
	ErrNotFound = &APIError{
		Status: http.StatusNotFound,
		Code:   CodeNotFound,
		Detail: "Not found.",
	}
	ErrParse = &APIError{
		Status: http.StatusBadRequest,
		Code:   CodeParseError,
		Detail: "JSON parse error.",
	}
)

const (
	MsgRequired  = "This field is required."
	MsgBlank     = "This field may not be blank."
	MsgInvalid   = "Invalid value."
	MsgNotObject = "Invalid data. Expected a dictionary."

	// NonFieldErrors keys failures that belong to the payload as a whole.
	NonFieldErrors = "non_field_errors"
)

// ValidationError carries every violated field with its messages in the order
// they were found.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, messages := range other.Fields {
		for _, m := range messages {
			e.Add(field, m)
		}
	}
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns nil when no field was reported, so callers can return the
// result directly as an error.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, f := range fields {
		b.WriteString(" ")
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Fields[f], " "))
	}
	return b.String()
}

// FieldError is a shortcut for a single-field validation failure.
func FieldError(field, message string) *ValidationError {
	v := NewValidationError()
	v.Add(field, message)
	return v
}

func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func AsAPIError(err error) (*APIError, bool) {
	var a *APIError
	if errors.As(err, &a) {
		return a, true
	}
	return nil, false
}
