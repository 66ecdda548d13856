package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcow77/module-5-test/internal/bootstrap"
	"github.com/redcow77/module-5-test/internal/config"
)

func newTestServer(t *testing.T, jwtSecret string) *Server {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        t.TempDir() + "/app.log",
			CorsAllowedOrigins: "*",
			StorageDriver:      bootstrap.StorageMemory,
		},
		Keys:   config.APIKeys{JWTSecret: jwtSecret},
		Ai:     config.AIConfig{Provider: "anthropic", EnrichmentMode: "sync"},
		Events: config.EventsConfig{Topic: "WORKSPACE_EVENTS"},
	}

	storage, err := bootstrap.NewStorage(cfg)
	require.NoError(t, err)
	container, err := bootstrap.NewContainer(storage, cfg)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	return New(cfg, container)
}

func TestServer_HealthAndPages(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/pages", strings.NewReader(`{"title":"Home"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = srv.GetApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Home", body.Data.Title)
}

func TestServer_RejectsBadToken(t *testing.T) {
	srv := newTestServer(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := srv.GetApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/pages", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStorage_UnknownDriver(t *testing.T) {
	_, err := bootstrap.NewStorage(&config.Config{App: config.AppConfig{StorageDriver: "sqlite"}})
	assert.Error(t, err)
}
