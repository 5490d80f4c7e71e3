package controllers

import (
	"net/http/httptest"
	"testing"

	"blogapi/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for raw, want := range map[string]uint{"1": 1, "42": 42} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: raw}}
		id, err := parseID(c)
		assert.NoError(t, err)
		assert.Equal(t, want, id)
	}

	for _, raw := range []string{"", "0", "-1", "abc", "99999999999"} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := parseID(c)
		assert.ErrorIs(t, err, apperrors.ErrNotFound, raw)
	}
}

func TestRequireFieldsKeepsExistingMessages(t *testing.T) {
	v := apperrors.FieldError("title", apperrors.MsgBlank)
	requireFields(v, map[string]bool{"title": false, "body": false, "author": true})

	assert.Equal(t, []string{apperrors.MsgBlank}, v.Fields["title"])
	assert.Equal(t, []string{apperrors.MsgRequired}, v.Fields["body"])
	assert.NotContains(t, v.Fields, "author")
}
