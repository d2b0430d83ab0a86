package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"stagestyle/internal/config"
	"stagestyle/internal/di"
	"stagestyle/internal/server"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainer(t *testing.T) *di.Container {
	t.Helper()
	v := viper.New()
	v.Set("JWT_SECRET", "test_jwt_secret")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	c, err := di.Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewApp_Banner(t *testing.T) {
	app := server.NewApp(newContainer(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "StageStyle")
}

func TestNewApp_Health(t *testing.T) {
	app := server.NewApp(newContainer(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["storage"])
	assert.Equal(t, false, body["events"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestNewApp_UnknownRoute(t *testing.T) {
	app := server.NewApp(newContainer(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewApp_UnmatchedMethodsFallThrough(t *testing.T) {
	app := server.NewApp(newContainer(t))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/users"},
		{http.MethodGet, "/users/u1"},
		{http.MethodDelete, "/orders"},
		{http.MethodPatch, "/productos"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, "The requested resource was not found", body["message"])
		})
	}
}

func TestNewApp_UsersStillNeedToken(t *testing.T) {
	app := server.NewApp(newContainer(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
