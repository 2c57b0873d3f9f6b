package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/matching"
)

func TestSelectRole(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, &fakeMatcher{})
	routes := s.Routes()
	_, bearer := bearerFor(t, s, store)

	t.Run("requires auth", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/profiles/role", "", map[string]string{"role": "founder"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("creates profile", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/profiles/role", bearer, map[string]string{"role": "founder"})
		require.Equal(t, http.StatusCreated, rec.Code)

		var profile db.Profile
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		assert.Equal(t, db.RoleFounder, profile.Role)
	})

	t.Run("role is immutable", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/profiles/role", bearer, map[string]string{"role": "employee"})
		require.Equal(t, http.StatusCreated, rec.Code)

		var profile db.Profile
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		assert.Equal(t, db.RoleFounder, profile.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/profiles/role", bearer, map[string]string{"role": "investor"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetMyProfile(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, &fakeMatcher{})
	routes := s.Routes()
	_, bearer := bearerFor(t, s, store)

	t.Run("no role selected yet", func(t *testing.T) {
		rec := doJSON(t, routes, "GET", "/profiles/me", bearer, nil)
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	})

	t.Run("founder with profile and startup", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/profiles/role", bearer, map[string]string{"role": "founder"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, routes, "PUT", "/profiles/founder", bearer, map[string]string{"full_name": "Ada King"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, routes, "PUT", "/profiles/startup", bearer, map[string]string{"startup_name": "Acme"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, routes, "GET", "/profiles/me", bearer, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out struct {
			Profile *db.Profile        `json:"profile"`
			Founder *db.FounderProfile `json:"founder"`
			Startup *db.StartupProfile `json:"startup"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.NotNil(t, out.Profile)
		require.NotNil(t, out.Founder)
		require.NotNil(t, out.Startup)
		assert.Equal(t, "Ada King", out.Founder.FullName)
		assert.Equal(t, "Acme", out.Startup.StartupName)
	})
}

func TestProfileUpserts_RoleChecks(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, &fakeMatcher{})
	routes := s.Routes()
	_, bearer := bearerFor(t, s, store)

	t.Run("upsert before role selection", func(t *testing.T) {
		rec := doJSON(t, routes, "PUT", "/profiles/founder", bearer, map[string]string{"full_name": "Ada"})
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	})

	rec := doJSON(t, routes, "POST", "/profiles/role", bearer, map[string]string{"role": "employee"})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("founder routes forbidden for employees", func(t *testing.T) {
		rec := doJSON(t, routes, "PUT", "/profiles/founder", bearer, map[string]string{"full_name": "Ada"})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doJSON(t, routes, "PUT", "/profiles/startup", bearer, map[string]string{"startup_name": "Acme"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("skills before employee profile", func(t *testing.T) {
		rec := doJSON(t, routes, "PUT", "/profiles/skills", bearer, map[string]any{"skill_tags": []string{"Go"}})
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	})

	t.Run("employee profile then skills", func(t *testing.T) {
		rec := doJSON(t, routes, "PUT", "/profiles/employee", bearer, map[string]string{"full_name": "Sarah Chen"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, routes, "PUT", "/profiles/skills", bearer, map[string]any{
			"skill_tags":          []string{"Go", "Postgres"},
			"years_of_experience": 6,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var skills db.EmployeeSkills
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skills))
		assert.Equal(t, db.StringArray{"Go", "Postgres"}, skills.SkillTags)
	})
}

func TestGetMatches(t *testing.T) {
	t.Run("founder gets cards", func(t *testing.T) {
		store := newFakeStore()
		matcher := &fakeMatcher{cards: []matching.MatchCard{
			{ID: "e1", Name: "Sarah Chen", MatchPercentage: 90, Verified: true},
			{ID: "e2", Name: "Sam Hill", MatchPercentage: 40, Verified: true},
		}}
		s := newTestServer(t, store, matcher)
		routes := s.Routes()
		_, bearer := bearerFor(t, s, store)

		rec := doJSON(t, routes, "POST", "/profiles/role", bearer, map[string]string{"role": "founder"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, routes, "GET", "/matches", bearer, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var cards []matching.MatchCard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
		require.Len(t, cards, 2)
		assert.Equal(t, "Sarah Chen", cards[0].Name)
	})

	t.Run("pipeline failure collapses to empty list", func(t *testing.T) {
		store := newFakeStore()
		matcher := &fakeMatcher{err: &matching.InferenceError{Err: errors.New("quota exhausted")}}
		s := newTestServer(t, store, matcher)
		routes := s.Routes()
		_, bearer := bearerFor(t, s, store)

		rec := doJSON(t, routes, "POST", "/profiles/role", bearer, map[string]string{"role": "employee"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, routes, "GET", "/matches", bearer, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("requires a profile", func(t *testing.T) {
		store := newFakeStore()
		s := newTestServer(t, store, &fakeMatcher{})
		routes := s.Routes()
		_, bearer := bearerFor(t, s, store)

		rec := doJSON(t, routes, "GET", "/matches", bearer, nil)
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	})

	t.Run("requires auth", func(t *testing.T) {
		s := newTestServer(t, newFakeStore(), &fakeMatcher{})
		rec := doJSON(t, s.Routes(), "GET", "/matches", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPosts(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, &fakeMatcher{})
	routes := s.Routes()
	userID, bearer := bearerFor(t, s, store)
	_, otherBearer := bearerFor(t, s, store)

	t.Run("create", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/posts", bearer, map[string]any{
			"post_content": "Looking for a founding engineer",
			"tags":         []string{"hiring"},
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var post db.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
		assert.Equal(t, userID, post.UserID)
		assert.Equal(t, "Looking for a founding engineer", post.PostContent)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/posts", bearer, map[string]string{"post_content": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := doJSON(t, routes, "POST", "/posts", otherBearer, map[string]string{"post_content": "Hello from someone else"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, routes, "GET", "/posts", bearer, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []db.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
		assert.Len(t, posts, 2)
	})

	t.Run("mine filter", func(t *testing.T) {
		rec := doJSON(t, routes, "GET", "/posts?mine=true", bearer, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []db.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, userID, posts[0].UserID)
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := doJSON(t, routes, "GET", "/posts?limit=0", bearer, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := newTestServer(t, newFakeStore(), &fakeMatcher{})
	userID := uuid.New()

	token, err := s.jwtService.GenerateToken(userID)
	require.NoError(t, err)

	claims, err := s.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	_, err = s.jwtService.ValidateToken(token + "tampered")
	assert.Error(t, err)

	_, err = s.jwtService.ValidateToken("")
	assert.Error(t, err)
}
