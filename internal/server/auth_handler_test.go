package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findyourco/cofounder-connect/internal/types"
)

func TestRegister(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, &fakeMatcher{})
	routes := s.Routes()

	t.Run("success returns user and token", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/register", "", map[string]string{
			"name":     "Sarah Chen",
			"email":    "sarah@example.com",
			"password": "longenough1",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp types.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.User)
		assert.Equal(t, "sarah@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.Token)
		// Password hash never leaks
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/register", "", map[string]string{
			"name":     "Other",
			"email":    "sarah@example.com",
			"password": "longenough1",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/register", "", map[string]string{
			"name":     "Short",
			"email":    "short@example.com",
			"password": "tiny",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid body rejected", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/register", "", "not-an-object")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, &fakeMatcher{})
	routes := s.Routes()

	rec := doJSON(t, routes, "POST", "/auth/register", "", map[string]string{
		"name":     "Sarah Chen",
		"email":    "sarah@example.com",
		"password": "longenough1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("success", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/login", "", map[string]string{
			"email":    "sarah@example.com",
			"password": "longenough1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp types.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/login", "", map[string]string{
			"email":    "sarah@example.com",
			"password": "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email gets the same generic error", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "longenough1",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid email or password")
	})
}

func TestUpdatePassword(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, &fakeMatcher{})
	routes := s.Routes()

	rec := doJSON(t, routes, "POST", "/auth/register", "", map[string]string{
		"name":     "Sarah Chen",
		"email":    "sarah@example.com",
		"password": "longenough1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	bearer := "Bearer " + resp.Token

	t.Run("wrong current password", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/password", bearer, map[string]string{
			"current_password": "wrongpassword",
			"new_password":     "evenlonger12",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success then login with new password", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/password", bearer, map[string]string{
			"current_password": "longenough1",
			"new_password":     "evenlonger12",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, routes, "POST", "/auth/login", "", map[string]string{
			"email":    "sarah@example.com",
			"password": "evenlonger12",
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, routes, "POST", "/auth/login", "", map[string]string{
			"email":    "sarah@example.com",
			"password": "longenough1",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("requires auth", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/auth/password", "", map[string]string{
			"current_password": "longenough1",
			"new_password":     "evenlonger12",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, newFakeStore(), &fakeMatcher{})
	rec := doJSON(t, s.Routes(), "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
