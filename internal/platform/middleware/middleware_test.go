// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/metrics"
	"github.com/taibuivan/taakbeheer/internal/platform/middleware"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
)

func newResolver(t *testing.T, now func() time.Time) (*sec.TokenService, *sec.SessionResolver) {
	t.Helper()
	tokens, err := sec.NewTokenService(sec.TokenConfig{
		Secret: []byte("middleware-test-secret"), Issuer: "test", Audience: "test", TTL: time.Minute, Now: now,
	})
	require.NoError(t, err)
	return tokens, sec.NewSessionResolver(tokens)
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorBody {
	t.Helper()
	var body respond.ErrorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestRequireAuth verifies session injection and the distinct expired message.
*/
func TestRequireAuth(t *testing.T) {
	current := time.Now()
	tokens, resolver := newResolver(t, func() time.Time { return current })
	recorder := metrics.New()

	var seen sec.Session
	handler := middleware.RequireAuth(resolver, recorder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetSession(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	token, err := tokens.Issue(8, sec.RoleUser)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)

	assert.Equal(t, http.StatusNoContent, response.Code)
	assert.Equal(t, int64(8), seen.UserID())

	// Missing header
	response = httptest.NewRecorder()
	handler.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, response.Code)
	assert.Equal(t, sec.MsgSignInRequired, decodeError(t, response).Message)

	// Expired token
	current = current.Add(2 * time.Minute)
	response = httptest.NewRecorder()
	handler.ServeHTTP(response, request)
	assert.Equal(t, http.StatusUnauthorized, response.Code)
	body := decodeError(t, response)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
	assert.Contains(t, body.Message, "expired")
}

/*
TestRequireRole verifies that a user session is refused an admin route.
*/
func TestRequireRole(t *testing.T) {
	tokens, resolver := newResolver(t, nil)

	handler := middleware.RequireAuth(resolver, nil)(
		middleware.RequireRole(sec.RoleAdmin, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})),
	)

	for role, status := range map[sec.Role]int{sec.RoleUser: http.StatusForbidden, sec.RoleAdmin: http.StatusOK} {
		token, err := tokens.Issue(1, role)
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		response := httptest.NewRecorder()
		handler.ServeHTTP(response, request)

		assert.Equal(t, status, response.Code, string(role))
	}
}

var itemSchema = validate.Schema{
	Params: validate.Fields{{Name: "id", Rule: validate.Int().Positive()}},
	Body:   validate.Fields{{Name: "name", Rule: validate.String().Max(10)}},
}

func newValidatedRouter(seen *validate.Input) http.Handler {
	router := chi.NewRouter()
	router.With(middleware.Validate(itemSchema)).Put("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		*seen = ctxutil.GetInput(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return router
}

/*
TestValidate_Middleware verifies param coercion and per-section reporting through chi.
*/
func TestValidate_Middleware(t *testing.T) {
	var seen validate.Input
	router := newValidatedRouter(&seen)

	response := httptest.NewRecorder()
	router.ServeHTTP(response, httptest.NewRequest(http.MethodPut, "/items/12", strings.NewReader(`{"name":"desk"}`)))
	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, int64(12), seen.Params.Int("id"))
	assert.Equal(t, "desk", seen.Body.String("name"))

	tests := []struct {
		name     string
		path     string
		body     string
		sections []string
	}{
		{"bad id and missing name", "/items/abc", `{}`, []string{"params", "body"}},
		{"unknown field", "/items/1", `{"name":"x","color":"red"}`, []string{"body"}},
		{"malformed json", "/items/1", `{"name":`, []string{"body"}},
		{"malformed json and bad id", "/items/0", `[1,2]`, []string{"params", "body"}},
		{"empty body", "/items/1", ``, []string{"body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := httptest.NewRecorder()
			router.ServeHTTP(response, httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, response.Code)
			var body struct {
				Code    string                    `json:"code"`
				Details map[string]map[string]any `json:"details"`
			}
			require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
			assert.Equal(t, "VALIDATION_FAILED", body.Code)
			for _, section := range tt.sections {
				assert.Contains(t, body.Details, section)
			}
			assert.Len(t, body.Details, len(tt.sections))
		})
	}
}

/*
TestAuthDelay verifies the jitter stays below the ceiling and is skipped when disabled.
*/
func TestAuthDelay(t *testing.T) {
	var slept []time.Duration
	sleeper := func(_ context.Context, d time.Duration) { slept = append(slept, d) }
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	delayed := middleware.AuthDelay(100*time.Millisecond, sleeper)(next)
	for range 20 {
		delayed.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	}
	require.Len(t, slept, 20)
	for _, d := range slept {
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.Less(t, d, 100*time.Millisecond)
	}

	slept = nil
	middleware.AuthDelay(0, sleeper)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Empty(t, slept)
}

/*
TestPacer_Delay verifies burst allowance, growing delay and the wait ceiling.
The cleanup goroutine must exit once the context is cancelled.
*/
func TestPacer_Delay(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pacer := middleware.NewPacer(ctx, 1, 2, 1500*time.Millisecond, middleware.ContextSleep)

	assert.Zero(t, pacer.Delay("10.0.0.1"))
	assert.Zero(t, pacer.Delay("10.0.0.1"))

	third := pacer.Delay("10.0.0.1")
	assert.Greater(t, third, time.Duration(0))
	assert.LessOrEqual(t, third, 1500*time.Millisecond)

	for range 5 {
		assert.LessOrEqual(t, pacer.Delay("10.0.0.1"), 1500*time.Millisecond)
	}

	// Other clients have their own bucket.
	assert.Zero(t, pacer.Delay("10.0.0.2"))
}

/*
TestPacer_Middleware verifies that rotating proxy headers does not reset a client's bucket.
*/
func TestPacer_Middleware(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var slept []time.Duration
	sleeper := func(_ context.Context, d time.Duration) { slept = append(slept, d) }
	handler := middleware.NewPacer(ctx, 1, 1, time.Second, sleeper).
		Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	for _, forwarded := range []string{"10.0.0.1", "10.0.0.2"} {
		request := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
		request.Header.Set("X-Forwarded-For", forwarded)
		handler.ServeHTTP(httptest.NewRecorder(), request)
	}

	require.Len(t, slept, 2)
	assert.Zero(t, slept[0])
	assert.Greater(t, slept[1], time.Duration(0))
}

/*
TestClientIP verifies proxy headers only count once chi's RealIP has rewritten RemoteAddr.
*/
func TestClientIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:4711"
	request.Header.Set("X-Forwarded-For", "203.0.113.9")

	assert.Equal(t, "192.0.2.1", middleware.ClientIP(request))

	var seen string
	chimw.RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.ClientIP(r)
	})).ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "203.0.113.9", seen)
}

/*
TestPanicRecovery verifies a panicking handler yields the standard 500 body.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	response := httptest.NewRecorder()
	handler.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, response.Code)
	body := decodeError(t, response)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.Equal(t, respond.MsgInternalProduction, body.Message)
}

/*
TestCORS verifies that only configured origins receive CORS headers.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(middleware.CORSConfig{Origins: []string{"http://localhost:5173"}, MaxAge: 600})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }),
	)

	request := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	request.Header.Set("Origin", "http://localhost:5173")
	request.Header.Set("Access-Control-Request-Method", "POST")
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)

	assert.Equal(t, http.StatusNoContent, response.Code)
	assert.Equal(t, "http://localhost:5173", response.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "600", response.Header().Get("Access-Control-Max-Age"))

	request = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	request.Header.Set("Origin", "http://evil.example")
	response = httptest.NewRecorder()
	handler.ServeHTTP(response, request)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Empty(t, response.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestRequestID verifies that an ID is generated when absent and echoed when present.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	response := httptest.NewRecorder()
	handler.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, response.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "given-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "given-id", seen)
}
