package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/internal/config"
	"github.com/rosterly/shiftroster/pkg/core/store"
)

func testServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	reg := store.NewRegistry(nil, nil, zap.NewNop())
	srv, err := New(cfg, reg, zap.NewNop())
	require.NoError(t, err)
	return srv
}

func TestHealthzOpen(t *testing.T) {
	srv := testServer(t, &config.Config{AuthTokens: []string{"secret"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	srv := testServer(t, &config.Config{AuthTokens: []string{"secret"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsWrongToken(t *testing.T) {
	srv := testServer(t, &config.Config{AuthTokens: []string{"secret"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_AcceptsConfiguredToken(t *testing.T) {
	srv := testServer(t, &config.Config{AuthTokens: []string{"secret"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer secret")
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_OpenWhenNoTokensConfigured(t *testing.T) {
	srv := testServer(t, &config.Config{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssetCache_ServesAndFallsBack(t *testing.T) {
	assetDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assetDir, "app.css"), []byte("body{}"), 0o644))

	srv := testServer(t, &config.Config{
		AssetDir:     assetDir,
		AssetVersion: "test-" + filepath.Base(t.TempDir()),
	})

	// First read comes from the filesystem and warms the cache
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/app.css", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())

	// Remove the file: the cached copy still serves
	require.NoError(t, os.Remove(filepath.Join(assetDir, "app.css")))
	w = httptest.NewRecorder()
	srv.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/app.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())

	// An asset never seen is a plain-text 503
	w = httptest.NewRecorder()
	srv.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/missing.js", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
