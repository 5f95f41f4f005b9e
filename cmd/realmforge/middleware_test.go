package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := SecurityHeaders()(inner)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
}

func TestSecurityHeaders_ChainedWithOtherMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	handler := Chain(inner, SecurityHeaders(), RequestID())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	// SecurityHeaders should be present
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
	// RequestID should also be present
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_PreservesClientID(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	})

	handler := RequestID()(inner)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "req-from-client")
	handler.ServeHTTP(w, r)

	assert.Equal(t, "req-from-client", seen)
	assert.Equal(t, "req-from-client", w.Header().Get("X-Request-ID"))
}

func TestAPIKeyAuth(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	skipPaths := []string{"/health"}
	handler := APIKeyAuth([]string{"secret"}, skipPaths, true, zap.NewNop())(inner)

	t.Run("valid header key", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/scenes", nil)
		r.Header.Set("X-API-Key", "secret")
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("valid query key", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/scenes/scene_1/stream?api_key=secret", nil)
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/scenes", nil)
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("skip path bypasses auth", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no configured keys disables auth", func(t *testing.T) {
		open := APIKeyAuth(nil, skipPaths, false, zap.NewNop())(inner)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/scenes", nil)
		open.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/v1/quality-presets":                     "/v1/quality-presets",
		"/v1/scenes":                              "/v1/scenes",
		"/v1/scenes/scene_349d1f2e":               "/v1/scenes/:id",
		"/v1/scenes/scene_349d1f2e/stream":        "/v1/scenes/:id/stream",
		"/v1/characters/character_hero":           "/v1/characters/:id",
		"/v1/scenes/0123456789abcdef":             "/v1/scenes/:id",
		"/v1/scenes/42":                           "/v1/scenes/:id",
		"/health":                                 "/health",
		"/v1/templates/forest":                    "/v1/templates/forest",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizePath(in), "path %s", in)
	}
}

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin gets headers", func(t *testing.T) {
		handler := CORS([]string{"https://game.example.com"})(inner)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/quality-presets", nil)
		r.Header.Set("Origin", "https://game.example.com")
		handler.ServeHTTP(w, r)
		assert.Equal(t, "https://game.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		handler := CORS([]string{"https://game.example.com"})(inner)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/quality-presets", nil)
		r.Header.Set("Origin", "https://evil.example.com")
		handler.ServeHTTP(w, r)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unconfigured origins reject preflight", func(t *testing.T) {
		handler := CORS(nil)(inner)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, "/v1/scenes", nil)
		r.Header.Set("Origin", "https://game.example.com")
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRecovery(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := Recovery(zap.NewNop())(inner)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/scenes", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
