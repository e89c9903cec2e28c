package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-assistant/backend/internal/config"
)

func TestNewApp(t *testing.T) {
	cfg := &config.Config{
		AppPort:            8000,
		LogLevel:           "DEBUG",
		FrontendDir:        filepath.Join(t.TempDir(), "missing"),
		CORSAllowedOrigins: "*",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.Equal(t, ":8000", app.Server.Addr)
	assert.NotNil(t, app.Metrics)
	assert.False(t, app.LLM.Configured())
	assert.False(t, app.Search.Configured())

	t.Run("Health check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Embedded providers are served", func(t *testing.T) {
		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/providers", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var got struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Positive(t, got.Count)
	})

	t.Run("Unconfigured chat still replies", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat", jsonBody(t, map[string]string{"message": "hello"}))
		app.Server.Handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"reply":`)
	})
}

func TestNewApp_MissingResourcesDir(t *testing.T) {
	cfg := &config.Config{ResourcesDir: filepath.Join(t.TempDir(), "nope")}

	app, err := NewApp(cfg)
	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}
