package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonArtkins/kuja-twende-adventures/internal/config"
	"github.com/DonArtkins/kuja-twende-adventures/internal/models"
	"github.com/DonArtkins/kuja-twende-adventures/internal/security"
	"github.com/DonArtkins/kuja-twende-adventures/internal/service"
)

type testEnv struct {
	router *gin.Engine
	tokens *security.TokenService
}

func newTestEnv(t *testing.T, checks map[string]HealthCheck) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTSecret:  "test-secret",
			JWTTTL:     time.Hour,
			CookieName: "kuja_session",
		},
	}
	log := zerolog.Nop()
	tokens := security.NewTokenService(cfg.Security.JWTSecret, cfg.Security.JWTTTL)

	users := &memoryUsers{users: map[string]models.User{}}
	destinations := &memoryDestinations{items: map[string]models.Destination{
		"safari": {
			ID:           "safari",
			Slug:         "digital-nomad-safari",
			Title:        "Digital Nomad Safari",
			Location:     "Maasai Mara, Kenya",
			Price:        1899,
			Category:     "adventure",
			MaxGroupSize: 8,
			Difficulty:   models.DifficultyEasy,
		},
	}}
	bookings := &memoryBookings{items: map[string]models.Booking{}}

	auth := service.NewAuthService(users, tokens, log).WithHasher(func(password string) ([]byte, error) {
		return security.HashPasswordWithParams(password, security.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8})
	})

	h := New(Dependencies{
		Log:          log,
		Config:       cfg,
		Tokens:       tokens,
		Auth:         auth,
		Bookings:     service.NewBookingService(bookings, destinations, nil, service.BookingOptions{}, log),
		Destinations: service.NewDestinationService(destinations, nil, nil, nil, log),
		Checks:       checks,
	})

	router := gin.New()
	h.Register(router.Group("/api"))
	return testEnv{router: router, tokens: tokens}
}

func (e testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e testEnv) issue(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := e.tokens.Issue(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "Amina", "email": "amina@example.com", "password": "safari123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, "User created successfully", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "amina@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, w.Body.String(), "argon2")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "kuja_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	w = env.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "amina@example.com", "password": "safari123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "Login successful", body["message"])

	claims, ok := env.tokens.Verify(body["token"].(string))
	require.True(t, ok)
	assert.Equal(t, user["_id"], claims.UserID)
}

func TestSignupErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"name": "A", "email": "a@example.com", "password": "123"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at least 6 characters long", decode(t, w)["error"])

	w = env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"email": "a@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, email, and password are required", decode(t, w)["error"])

	w = env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"name": "A", "email": "a@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"name": "B", "email": "A@example.com", "password": "secret2"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists with this email", decode(t, w)["error"])
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"name": "A", "email": "a@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	wrong := env.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@example.com", "password": "nope123"}, "")
	unknown := env.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "b@example.com", "password": "secret1"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	missing := env.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestMeAndLogout(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/signup", gin.H{"name": "A", "email": "a@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	token := decode(t, w)["token"].(string)

	w = env.do(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@example.com", decode(t, w)["user"].(map[string]any)["email"])

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "kuja_session", Value: token})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	w = env.do(t, http.MethodPost, "/api/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestBookingLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.issue(t, "user-1", "user")

	w := env.do(t, http.MethodPost, "/api/bookings", gin.H{
		"destinationId":  "safari",
		"name":           "Amina",
		"email":          "amina@example.com",
		"phone":          "+254700000000",
		"date":           "2026-12-01",
		"numberOfPeople": 1,
		"status":         "confirmed",
		"totalAmount":    1,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)
	id := created["_id"].(string)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, 1899.0, created["totalAmount"])
	assert.Equal(t, "user-1", created["userId"])

	w = env.do(t, http.MethodPut, "/api/bookings/"+id, gin.H{"status": "confirmed"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Booking updated successfully", decode(t, w)["message"])

	w = env.do(t, http.MethodGet, "/api/bookings/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, "confirmed", got["status"])
	assert.Equal(t, 1899.0, got["totalAmount"])

	w = env.do(t, http.MethodGet, "/api/bookings/mine", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Contains(t, listed[0], "destination")

	w = env.do(t, http.MethodDelete, "/api/bookings/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Booking deleted successfully", decode(t, w)["message"])

	w = env.do(t, http.MethodGet, "/api/bookings/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Booking not found", decode(t, w)["error"])

	w = env.do(t, http.MethodDelete, "/api/bookings/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.issue(t, "user-1", "user")

	w := env.do(t, http.MethodGet, "/api/bookings", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/bookings", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/bookings", gin.H{
		"destinationId": "atlantis", "name": "A", "email": "a@example.com", "phone": "1",
		"date": "2026-12-01", "numberOfPeople": 1,
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Destination not found", decode(t, w)["error"])

	w = env.do(t, http.MethodPost, "/api/bookings", gin.H{
		"destinationId": "safari", "name": "A", "email": "a@example.com", "phone": "1",
		"date": "someday", "numberOfPeople": 1,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/bookings", gin.H{
		"destinationId": "safari", "name": "A", "email": "a@example.com", "phone": "1",
		"date": "2026-12-01T10:00:00Z", "numberOfPeople": 2,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["_id"].(string)

	w = env.do(t, http.MethodPut, "/api/bookings/"+id, gin.H{"status": "refunded"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/bookings/missing", gin.H{"status": "confirmed"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	other := env.issue(t, "user-2", "user")
	w = env.do(t, http.MethodGet, "/api/bookings/"+id, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	adminToken := env.issue(t, "admin-1", "admin")
	w = env.do(t, http.MethodGet, "/api/bookings/"+id, nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDestinationsAdminRoutes(t *testing.T) {
	env := newTestEnv(t, nil)
	payload := gin.H{
		"title":        "Arctic Aurora Tech",
		"location":     "Reykjavik, Iceland",
		"price":        3299,
		"category":     "nature",
		"duration":     "6 days",
		"maxGroupSize": 10,
		"difficulty":   "Challenging",
		"highlights":   []string{"Heated glass igloo accommodation"},
	}

	w := env.do(t, http.MethodPost, "/api/destinations", payload, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/destinations", payload, env.issue(t, "user-1", "user"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := env.issue(t, "admin-1", "admin")
	w = env.do(t, http.MethodPost, "/api/destinations", payload, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "arctic-aurora-tech", created["slug"])

	bad := gin.H{"title": "X", "location": "Y", "price": 1, "maxGroupSize": 1, "difficulty": "Impossible"}
	w = env.do(t, http.MethodPost, "/api/destinations", bad, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/destinations/arctic-aurora-tech", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created["_id"], decode(t, w)["_id"])

	w = env.do(t, http.MethodPut, "/api/destinations/"+created["_id"].(string), gin.H{"price": 3499}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Destination updated successfully", decode(t, w)["message"])

	w = env.do(t, http.MethodDelete, "/api/destinations/"+created["_id"].(string), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/destinations/"+created["_id"].(string), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListDestinationsFilters(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/destinations?category=all&difficulty=all", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)

	w = env.do(t, http.MethodGet, "/api/destinations?category=nature", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var none []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &none))
	assert.Empty(t, none)

	w = env.do(t, http.MethodGet, "/api/destinations?difficulty=Impossible", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/destinations/popular?limit=3", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
		"cache":    func(context.Context) error { return errors.New("connection refused") },
	})

	w := env.do(t, http.MethodGet, "/api/healthz", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "degraded", body["status"])
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "ok", deps["database"])
	assert.Equal(t, "error", deps["cache"])
}
