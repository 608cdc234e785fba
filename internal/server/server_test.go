package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopmesh/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8700", Env: "test", Name: "user-api"},
		JWT:    config.JWTConfig{Secret: "test-secret"},
	}
}

func TestHealthEndpointWithoutDatabase(t *testing.T) {
	srv := New(testConfig(), zap.NewNop(), nil, nil, func(r chi.Router, authMiddleware func(http.Handler) http.Handler) {})

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.NotContains(t, payload, "schemaVersion", "no database means no schema version to report")
}

func TestRegisteredRoutesAreServed(t *testing.T) {
	srv := New(testConfig(), zap.NewNop(), nil, nil, func(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
		r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(authMiddleware).Get("/api/secret", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The auth middleware handed to the registration func must guard
	// routes wrapped with it.
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/secret", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServerAddressUsesConfiguredPort(t *testing.T) {
	srv := New(testConfig(), zap.NewNop(), nil, nil, func(r chi.Router, authMiddleware func(http.Handler) http.Handler) {})
	assert.Equal(t, ":8700", srv.Addr)
}
