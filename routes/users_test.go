package routes_test

import (
	"net/http"
	"testing"

	"blogapi/models"
	"blogapi/serializers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetManyUsers(t *testing.T) {
	f := setup(t)
	want := serializers.Users([]models.User{*f.user, *f.user2, *f.admin})

	for name, token := range map[string]string{"unauth": "", "auth": f.authToken} {
		t.Run(name, func(t *testing.T) {
			w := f.do(t, http.MethodGet, "/api/v1/users/", token, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, want, decode[[]serializers.UserResponse](t, w))
		})
	}
}

func TestGetOneUser(t *testing.T) {
	f := setup(t)
	for name, token := range map[string]string{"unauth": "", "auth": f.authToken} {
		t.Run(name, func(t *testing.T) {
			w := f.do(t, http.MethodGet, "/api/v1/users/1/", token, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, serializers.UserResponse{ID: 1, Username: "test_user"}, decode[serializers.UserResponse](t, w))
		})
	}
}

func TestGetMissingUser(t *testing.T) {
	f := setup(t)
	assertDetail(t, f.do(t, http.MethodGet, "/api/v1/users/100/", "", nil), http.StatusNotFound, notFound)
}

func TestAddUser(t *testing.T) {
	f := setup(t)
	body := map[string]any{"username": "Added_user"}

	assertDetail(t, f.do(t, http.MethodPost, "/api/v1/users/", "", body), http.StatusForbidden, notAuthenticated)
	assertDetail(t, f.do(t, http.MethodPost, "/api/v1/users/", f.authToken, body), http.StatusForbidden, permissionDenied)

	w := f.do(t, http.MethodPost, "/api/v1/users/", f.adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[serializers.UserResponse](t, w)
	assert.Equal(t, "Added_user", got.Username)

	var stored models.User
	require.NoError(t, f.db.First(&stored, got.ID).Error)
	assert.Equal(t, serializers.User(&stored), got)
	assert.False(t, stored.IsStaff)
}

func TestAddUserDuplicate(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodPost, "/api/v1/users", f.adminToken, map[string]any{"username": "test_user"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string][]string{
		"username": {"A user with that username already exists."},
	}, decode[map[string][]string](t, w))
}

func TestUserFieldsRequired(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodPost, "/api/v1/users/", f.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string][]string{"username": {"This field is required."}}, decode[map[string][]string](t, w))
}

func TestAddUserBlankUsername(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodPost, "/api/v1/users/", f.adminToken, map[string]any{"username": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string][]string{"username": {"This field may not be blank."}}, decode[map[string][]string](t, w))
}

func TestPatchUser(t *testing.T) {
	f := setup(t)
	body := map[string]any{"username": "Patched_user"}

	assertDetail(t, f.do(t, http.MethodPatch, "/api/v1/users/1/", "", body), http.StatusForbidden, notAuthenticated)
	assertDetail(t, f.do(t, http.MethodPatch, "/api/v1/users/1/", f.authToken, body), http.StatusForbidden, permissionDenied)

	w := f.do(t, http.MethodPatch, "/api/v1/users/1/", f.adminToken, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, serializers.UserResponse{ID: 1, Username: "Patched_user"}, decode[serializers.UserResponse](t, w))
}

func TestPutUserRequiresUsername(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodPut, "/api/v1/users/1", f.adminToken, map[string]any{"password": "secret99"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string][]string{"username": {"This field is required."}}, decode[map[string][]string](t, w))
}

func TestDeleteUser(t *testing.T) {
	f := setup(t)

	assertDetail(t, f.do(t, http.MethodDelete, "/api/v1/users/2/", "", nil), http.StatusForbidden, notAuthenticated)
	assertDetail(t, f.do(t, http.MethodDelete, "/api/v1/users/2/", f.authToken, nil), http.StatusForbidden, permissionDenied)

	w := f.do(t, http.MethodDelete, "/api/v1/users/2/", f.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	assertDetail(t, f.do(t, http.MethodGet, "/api/v1/users/2/", "", nil), http.StatusNotFound, notFound)
}

func TestDeletedUserTokenStopsWorking(t *testing.T) {
	f := setup(t)
	require.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/v1/users/1", f.adminToken, nil).Code)

	// the post went with its author
	assertDetail(t, f.do(t, http.MethodGet, "/api/v1/posts/1", "", nil), http.StatusNotFound, notFound)

	w := f.do(t, http.MethodGet, "/api/v1/posts", f.authToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
