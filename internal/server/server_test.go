package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/findyourco/cofounder-connect/internal/config"
	"github.com/findyourco/cofounder-connect/internal/db"
	"github.com/findyourco/cofounder-connect/internal/matching"
)

// fakeStore is an in-memory DataStore for handler tests.
type fakeStore struct {
	users    map[uuid.UUID]*db.User
	profiles map[uuid.UUID]*db.Profile // keyed by auth user ID
	founders map[uuid.UUID]*db.FounderProfile
	startups map[uuid.UUID]*db.StartupProfile
	emps     map[uuid.UUID]*db.EmployeeProfile
	skills   map[uuid.UUID]*db.EmployeeSkills // keyed by employee profile ID
	posts    []db.Post
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*db.User),
		profiles: make(map[uuid.UUID]*db.Profile),
		founders: make(map[uuid.UUID]*db.FounderProfile),
		startups: make(map[uuid.UUID]*db.StartupProfile),
		emps:     make(map[uuid.UUID]*db.EmployeeProfile),
		skills:   make(map[uuid.UUID]*db.EmployeeSkills),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeStore) GetProfileByAuthUser(_ context.Context, authUserID uuid.UUID) (*db.Profile, error) {
	return f.profiles[authUserID], nil
}

func (f *fakeStore) CreateProfile(_ context.Context, authUserID uuid.UUID, role string) (*db.Profile, error) {
	// Role is immutable once selected
	if existing, ok := f.profiles[authUserID]; ok {
		return existing, nil
	}
	p := &db.Profile{ID: uuid.New(), AuthUserID: authUserID, Role: role}
	f.profiles[authUserID] = p
	return p, nil
}

func (f *fakeStore) GetFounderByProfile(_ context.Context, profileID uuid.UUID) (*db.FounderProfile, error) {
	for _, fp := range f.founders {
		if fp.ProfileID == profileID {
			return fp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetFounderByID(_ context.Context, id uuid.UUID) (*db.FounderProfile, error) {
	return f.founders[id], nil
}

func (f *fakeStore) UpsertFounderProfile(_ context.Context, fp *db.FounderProfile) (*db.FounderProfile, error) {
	if fp.ID == uuid.Nil {
		fp.ID = uuid.New()
	}
	f.founders[fp.ID] = fp
	return fp, nil
}

func (f *fakeStore) GetStartupByFounder(_ context.Context, founderProfileID uuid.UUID) (*db.StartupProfile, error) {
	for _, sp := range f.startups {
		if sp.FounderProfileID == founderProfileID {
			return sp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetStartupByID(_ context.Context, id uuid.UUID) (*db.StartupProfile, error) {
	return f.startups[id], nil
}

func (f *fakeStore) UpsertStartupProfile(_ context.Context, sp *db.StartupProfile) (*db.StartupProfile, error) {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	f.startups[sp.ID] = sp
	return sp, nil
}

func (f *fakeStore) GetEmployeeByProfile(_ context.Context, profileID uuid.UUID) (*db.EmployeeProfile, error) {
	for _, ep := range f.emps {
		if ep.ProfileID == profileID {
			return ep, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetEmployeeByID(_ context.Context, id uuid.UUID) (*db.EmployeeProfile, error) {
	return f.emps[id], nil
}

func (f *fakeStore) UpsertEmployeeProfile(_ context.Context, ep *db.EmployeeProfile) (*db.EmployeeProfile, error) {
	if ep.ID == uuid.Nil {
		ep.ID = uuid.New()
	}
	f.emps[ep.ID] = ep
	return ep, nil
}

func (f *fakeStore) GetSkillsByEmployee(_ context.Context, employeeProfileID uuid.UUID) (*db.EmployeeSkills, error) {
	return f.skills[employeeProfileID], nil
}

func (f *fakeStore) UpsertEmployeeSkills(_ context.Context, sk *db.EmployeeSkills) (*db.EmployeeSkills, error) {
	if sk.ID == uuid.Nil {
		sk.ID = uuid.New()
	}
	f.skills[sk.EmployeeProfileID] = sk
	return sk, nil
}

func (f *fakeStore) ListEmployeesWithSkills(_ context.Context) ([]db.EmployeeWithSkills, error) {
	var out []db.EmployeeWithSkills
	for _, ep := range f.emps {
		out = append(out, db.EmployeeWithSkills{Profile: *ep, Skills: f.skills[ep.ID]})
	}
	return out, nil
}

func (f *fakeStore) ListStartupsWithFounders(_ context.Context) ([]db.StartupWithFounder, error) {
	var out []db.StartupWithFounder
	for _, sp := range f.startups {
		out = append(out, db.StartupWithFounder{Startup: *sp, Founder: f.founders[sp.FounderProfileID]})
	}
	return out, nil
}

func (f *fakeStore) CreatePost(_ context.Context, p *db.Post) (*db.Post, error) {
	p.ID = uuid.New()
	f.posts = append([]db.Post{*p}, f.posts...)
	return p, nil
}

func (f *fakeStore) ListPosts(_ context.Context, userID *uuid.UUID, limit int) ([]db.Post, error) {
	var out []db.Post
	for _, p := range f.posts {
		if userID != nil && p.UserID != *userID {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// fakeMatcher is a canned MatchService.
type fakeMatcher struct {
	cards []matching.MatchCard
	err   error
}

func (m *fakeMatcher) FindEmployeesForFounder(context.Context, uuid.UUID) ([]matching.MatchCard, error) {
	return m.cards, m.err
}

func (m *fakeMatcher) FindStartupsForEmployee(context.Context, uuid.UUID) ([]matching.MatchCard, error) {
	return m.cards, m.err
}

// newTestServer wires a Server around fakes, skipping New's DB and model setup.
func newTestServer(t *testing.T, store DataStore, matcher MatchService) *Server {
	t.Helper()

	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}

	s := &Server{
		store:       store,
		matcher:     matcher,
		jwtService:  jwtService,
		userService: NewUserService(store, passwordConfig),
	}
	s.authHandler = NewAuthHandler(s.userService, jwtService)
	return s
}

func TestNew_RejectsBadConfigBeforeConnecting(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")
	t.Setenv("JWT_SECRET", "test-secret")

	// The config error must surface before any connection is attempted;
	// nothing listens on the database URL below.
	_, err := New(&config.Config{
		Port:        8080,
		DatabaseURL: "postgres://127.0.0.1:1/none",
		GeminiKey:   "key",
		MatchModel:  "gemini-2.5-flash",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "BCRYPT_COST")
}

// bearerFor creates a user row and returns its ID plus an Authorization value.
func bearerFor(t *testing.T, s *Server, store *fakeStore) (uuid.UUID, string) {
	t.Helper()

	userID, err := store.CreateUser(context.Background(), "Test User", uuid.NewString()+"@example.com", "x")
	require.NoError(t, err)

	token, err := s.jwtService.GenerateToken(userID)
	require.NoError(t, err)
	return userID, "Bearer " + token
}

func doJSON(t *testing.T, handler http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
