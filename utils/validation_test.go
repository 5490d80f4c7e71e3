package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogapi/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postPayload struct {
	Author *uint   `json:"author" binding:"required"`
	Title  *string `json:"title" binding:"required,notblank,max=5"`
	Body   *string `json:"body" binding:"required,notblank"`
}

type namePayload struct {
	Username *string `json:"username" binding:"required,username"`
}

func contextWithBody(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindJSONEmptyBodyReportsEveryRequiredField(t *testing.T) {
	var p postPayload
	err := BindJSON(contextWithBody(""), &p)

	v, ok := apperrors.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, map[string][]string{
		"author": {apperrors.MsgRequired},
		"title":  {apperrors.MsgRequired},
		"body":   {apperrors.MsgRequired},
	}, v.Fields)
}

func TestBindJSONLengthAndBlank(t *testing.T) {
	var p postPayload
	err := BindJSON(contextWithBody(`{"author": 1, "title": "too long", "body": ""}`), &p)

	v, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Ensure this field has no more than 5 characters."}, v.Fields["title"])
	assert.Equal(t, []string{apperrors.MsgBlank}, v.Fields["body"])
	assert.NotContains(t, v.Fields, "author")
}

func TestBindJSONValid(t *testing.T) {
	var p postPayload
	require.NoError(t, BindJSON(contextWithBody(`{"author": 3, "title": "Hi", "body": "text"}`), &p))
	assert.Equal(t, uint(3), *p.Author)
	assert.Equal(t, "Hi", *p.Title)
}

func TestBindJSONWrongType(t *testing.T) {
	var p postPayload
	err := BindJSON(contextWithBody(`{"author": "me", "title": "Hi", "body": "x"}`), &p)

	v, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, map[string][]string{"author": {msgInvalidInteger}}, v.Fields)
}

func TestBindJSONWrongTypeKeepsValidating(t *testing.T) {
	var p postPayload
	err := BindJSON(contextWithBody(`{"title": 5, "body": "   "}`), &p)

	v, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, map[string][]string{
		"author": {apperrors.MsgRequired},
		"title":  {msgInvalidString},
		"body":   {apperrors.MsgBlank},
	}, v.Fields)
}

func TestBindJSONReportsEveryMistypedField(t *testing.T) {
	var p postPayload
	err := BindJSON(contextWithBody(`{"author": true, "title": [], "body": {}}`), &p)

	v, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, map[string][]string{
		"author": {msgInvalidInteger},
		"title":  {msgInvalidString},
		"body":   {msgInvalidString},
	}, v.Fields)
}

func TestNotBlankTag(t *testing.T) {
	var p postPayload
	err := BindJSON(contextWithBody(`{"author": 1, "title": " \t", "body": "\n"}`), &p)

	v, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, map[string][]string{
		"title": {apperrors.MsgBlank},
		"body":  {apperrors.MsgBlank},
	}, v.Fields)
}

func TestBindJSONNotAnObject(t *testing.T) {
	var p postPayload
	err := BindJSON(contextWithBody(`[1, 2]`), &p)

	v, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{apperrors.MsgNotObject}, v.Fields[apperrors.NonFieldErrors])
}

func TestBindJSONMalformed(t *testing.T) {
	var p postPayload
	err := BindJSON(contextWithBody(`{"author":`), &p)
	assert.ErrorIs(t, err, apperrors.ErrParse)
}

func TestUsernameTag(t *testing.T) {
	var ok namePayload
	require.NoError(t, BindJSON(contextWithBody(`{"username": "test_user.1@x+y-z"}`), &ok))

	var bad namePayload
	err := BindJSON(contextWithBody(`{"username": "has space"}`), &bad)
	v, isValidation := apperrors.AsValidation(err)
	require.True(t, isValidation)
	assert.Equal(t, []string{msgInvalidUsername}, v.Fields["username"])
}
