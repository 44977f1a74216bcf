package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KIFUA/Church-Buses/models"
)

func TestUserList(t *testing.T) {
	r, _ := newTestServer(t)
	admin := registerUser(t, r, "admin", "")
	registerUser(t, r, "petro", "")

	w := doRequest(t, r, http.MethodGet, "/api/users", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	decodeBody(t, w, &users)
	assert.Len(t, users, 2)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUserUpdateRole(t *testing.T) {
	r, _ := newTestServer(t)
	admin := registerUser(t, r, "admin", "")
	petro := registerUser(t, r, "petro", "")

	w := doRequest(t, r, http.MethodPut, "/api/users/"+petro.User.ID+"/role?role=deacon", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The new role takes effect on the next request.
	w = doRequest(t, r, http.MethodGet, "/api/auth/me", petro.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Role string `json:"role"`
	}
	decodeBody(t, w, &me)
	assert.Equal(t, "deacon", me.Role)

	w = doRequest(t, r, http.MethodPut, "/api/users/"+petro.User.ID+"/role?role=emperor", admin.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPut, "/api/users/no-such-id/role?role=user", admin.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserDelete(t *testing.T) {
	r, _ := newTestServer(t)
	admin := registerUser(t, r, "admin", "")
	petro := registerUser(t, r, "petro", "")

	// Admins cannot delete their own account.
	w := doRequest(t, r, http.MethodDelete, "/api/users/"+admin.User.ID, admin.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/api/users/"+petro.User.ID, admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Users are hard-deleted; the token stops working.
	w = doRequest(t, r, http.MethodGet, "/api/auth/me", petro.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/api/users/"+petro.User.ID, admin.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
