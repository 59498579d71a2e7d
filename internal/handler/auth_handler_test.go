package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"instiwise-api/internal/cache"
	"instiwise-api/internal/middleware"
	"instiwise-api/internal/model"
	"instiwise-api/internal/service"
)

// fakeUserStore is an in-memory stand-in for the postgres repository,
// enforcing the same uniqueness and once-only activation rules.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.ErrEmailTaken
		}
	}
	s.users[u.ID] = *u

	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}

	return u, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}

	return model.User{}, model.ErrUserNotFound
}

func (s *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username != nil && strings.EqualFold(*u.Username, username) {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeUserStore) Activate(_ context.Context, id string, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	if u.IsActive {
		return model.ErrAlreadyActive
	}

	u.Username = &username
	u.IsActive = true
	s.users[id] = u

	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id string, passwordHash string, validAfter time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}

	u.PasswordHash = passwordHash
	u.TokenValidAfter = validAfter
	s.users[id] = u

	return nil
}

// newAuthTestRouter wires the real auth service and middleware over the
// in-memory store, mirroring the production route layout under
// /api/v1/auth.
func newAuthTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tokens := service.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
	svc := service.NewAuthService(newFakeUserStore(), tokens, cache.NewMemoryBlacklist())
	authHandler := NewAuthHandler(svc, false)
	authMW := middleware.NewAuthMiddleware(svc)

	r := chi.NewRouter()
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authMW.RequireAuth)
			r.Post("/setup-username", authHandler.SetupUsername)
			r.Get("/me", authHandler.Me)
			r.Post("/logout", authHandler.Logout)
		})
	})

	return r
}

func doJSON(t *testing.T, router http.Handler, method string, path string, body any, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (model.APIResponse, map[string]any) {
	t.Helper()

	var envelope model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	data, _ := envelope.Data.(map[string]any)

	return envelope, data
}

func refreshCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == refreshCookieName {
			return c
		}
	}

	return nil
}

func TestRegisterBrowserClientGetsCookie(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
		Email:    "ana@campus.edu",
		Password: "Sup3rSecret!",
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	envelope, data := decodeEnvelope(t, rec)
	require.True(t, envelope.Success)
	require.NotEmpty(t, data["access_token"])
	require.NotContains(t, data, "refresh_token")

	cookie := refreshCookie(rec)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, "/api/v1/auth", cookie.Path)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestRegisterAPIClientGetsTokenInBody(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
		Email:    "ben@campus.edu",
		Password: "Sup3rSecret!",
	}, func(req *http.Request) {
		req.Header.Set("X-Client-Type", "mobile")
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	_, data := decodeEnvelope(t, rec)
	require.NotEmpty(t, data["access_token"])
	require.NotEmpty(t, data["refresh_token"])
	require.Nil(t, refreshCookie(rec))
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
		Email:    "carla@campus.edu",
		Password: "Sup3rSecret!",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
		Email:    "carla@campus.edu",
		Password: "wrong-password",
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	envelope, _ := decodeEnvelope(t, rec)
	require.False(t, envelope.Success)
	require.Equal(t, model.TagAuthError, envelope.Error)
	require.Equal(t, "Invalid email or password", envelope.Message)
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
		Email:    "dan@campus.edu",
		Password: "Sup3rSecret!",
	}, func(req *http.Request) {
		req.Header.Set("X-Client-Type", "mobile")
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	_, data := decodeEnvelope(t, rec)
	accessToken, _ := data["access_token"].(string)
	require.NotEmpty(t, accessToken)

	withBearer := func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/setup-username", model.SetupUsernameRequest{
		Username: "dan_dev",
	}, func(req *http.Request) {
		req.Header.Set("X-Client-Type", "mobile")
		withBearer(req)
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, withBearer)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", nil, withBearer)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := refreshCookie(rec)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, withBearer)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope, _ := decodeEnvelope(t, rec)
	require.Equal(t, model.TagAuthError, envelope.Error)
}

func TestRefreshRotatesCookieToken(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
		Email:    "eva@campus.edu",
		Password: "Sup3rSecret!",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	first := refreshCookie(rec)
	require.NotNil(t, first)

	withCookie := func(c *http.Cookie) func(*http.Request) {
		return func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, withCookie(first))
	require.Equal(t, http.StatusOK, rec.Code)

	rotated := refreshCookie(rec)
	require.NotNil(t, rotated)
	require.NotEqual(t, first.Value, rotated.Value)

	// The old token was revoked on rotation.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, withCookie(first))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// The rotated one still works.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, withCookie(rotated))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshWithoutToken(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope, _ := decodeEnvelope(t, rec)
	require.Equal(t, model.TagAuthError, envelope.Error)
	require.Equal(t, "Refresh token required", envelope.Message)
}
