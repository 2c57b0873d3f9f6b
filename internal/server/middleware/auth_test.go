package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	userID uuid.UUID
	err    error
}

type fakeClaims struct{ userID uuid.UUID }

func (c *fakeClaims) GetUserID() uuid.UUID { return c.userID }

func (v *fakeValidator) ValidateToken(string) (UserIDGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &fakeClaims{userID: v.userID}, nil
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	makeHandler := func(validator TokenValidator) (http.Handler, *uuid.UUID) {
		var seen uuid.UUID
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := GetUserID(r)
			require.NoError(t, err)
			seen = id
			w.WriteHeader(http.StatusOK)
		})
		return AuthMiddleware(validator)(next), &seen
	}

	t.Run("valid bearer token", func(t *testing.T) {
		handler, seen := makeHandler(&fakeValidator{userID: userID})

		req := httptest.NewRequest("GET", "/matches", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, *seen)
	})

	t.Run("bearer prefix is case insensitive", func(t *testing.T) {
		handler, _ := makeHandler(&fakeValidator{userID: userID})

		req := httptest.NewRequest("GET", "/matches", nil)
		req.Header.Set("Authorization", "bearer sometoken")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		handler, _ := makeHandler(&fakeValidator{userID: userID})

		req := httptest.NewRequest("GET", "/matches", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		handler, _ := makeHandler(&fakeValidator{userID: userID})

		for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
			req := httptest.NewRequest("GET", "/matches", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		handler, _ := makeHandler(&fakeValidator{err: errors.New("expired")})

		req := httptest.NewRequest("GET", "/matches", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}

func TestWithUserID(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithUserID(req.Context(), userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
