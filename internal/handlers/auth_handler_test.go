package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KIFUA/Church-Buses/internal/handlers"
)

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	r, _ := newTestServer(t)

	first := registerUser(t, r, "olena", "user")
	assert.Equal(t, "admin", first.User.Role)
	assert.Equal(t, "bearer", first.TokenType)

	second := registerUser(t, r, "petro", "")
	assert.Equal(t, "user", second.User.Role)

	third := registerUser(t, r, "ivan", "presbyter")
	assert.Equal(t, "presbyter", third.User.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := newTestServer(t)
	registerUser(t, r, "olena", "")

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":  "olena",
		"password":  "another",
		"full_name": "Інша Олена",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterInvalidRole(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":  "olena",
		"password":  "secret123",
		"full_name": "Олена",
		"role":      "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	r, _ := newTestServer(t)
	registerUser(t, r, "olena", "")

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "olena",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.TokenResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "olena", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "olena",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "nobody",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMe(t *testing.T) {
	r, _ := newTestServer(t)
	admin := registerUser(t, r, "olena", "")

	w := doRequest(t, r, http.MethodGet, "/api/auth/me", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me handlers.UserResponse
	decodeBody(t, w, &me)
	assert.Equal(t, "olena", me.Username)
	assert.Equal(t, "admin", me.Role)

	// The password hash never leaks into the response.
	assert.NotContains(t, w.Body.String(), "password")

	w = doRequest(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
