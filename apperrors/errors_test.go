package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("load post: %w", ErrNotFound)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrPermissionDenied))

	apiErr, ok := AsAPIError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestAuthErrorsShareForbiddenStatus(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, ErrNotAuthenticated.Status)
	assert.Equal(t, http.StatusForbidden, ErrPermissionDenied.Status)
	assert.NotEqual(t, ErrNotAuthenticated.Code, ErrPermissionDenied.Code)
}

func TestValidationErrorCollectsAllFields(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.OrNil())

	v.Add("title", MsgRequired)
	v.Add("body", MsgRequired)
	v.Merge(FieldError("title", MsgBlank))

	assert.Equal(t, []string{MsgRequired, MsgBlank}, v.Fields["title"])
	assert.Equal(t, []string{MsgRequired}, v.Fields["body"])

	err := fmt.Errorf("create: %w", v.OrNil())
	got, ok := AsValidation(err)
	assert.True(t, ok)
	assert.Len(t, got.Fields, 2)
	assert.Contains(t, err.Error(), "body: This field is required.")
}
