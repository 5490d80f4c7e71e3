package routes_test

import (
	"net/http"
	"testing"

	"blogapi/controllers"
	"blogapi/serializers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndMe(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"username": "test_user", "password": "abc123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode[controllers.LoginResponse](t, w)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, serializers.UserResponse{ID: 1, Username: "test_user"}, login.User)

	w = f.do(t, http.MethodGet, "/api/v1/auth/me/", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, login.User, decode[serializers.UserResponse](t, w))
}

func TestLoginWithLoginTokenCanWrite(t *testing.T) {
	f := setup(t)

	login := decode[controllers.LoginResponse](t, f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"username": "admin", "password": "admin_password"}))
	w := f.do(t, http.MethodPost, "/api/v1/users", login.Token, map[string]any{"username": "from_login"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"username": "test_user", "password": "nope"})
	assertDetail(t, w, http.StatusForbidden, map[string]string{
		"detail": "Incorrect authentication credentials.",
		"code":   "authentication_failed",
	})
}

func TestLoginFieldsRequired(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodPost, "/api/v1/auth/login", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string][]string{
		"username": {"This field is required."},
		"password": {"This field is required."},
	}, decode[map[string][]string](t, w))
}

func TestMeAnonymous(t *testing.T) {
	f := setup(t)
	assertDetail(t, f.do(t, http.MethodGet, "/api/v1/auth/me", "", nil), http.StatusForbidden, notAuthenticated)
}
