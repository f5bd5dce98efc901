package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicsBecomeInternalErrors(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
}

func TestCORSAllowsConfiguredOriginOnly(t *testing.T) {
	env := newTestEnv(t, map[string]string{"ACCEPTED_ORIGINS": "https://site.example.com"})

	resp := env.do(env.client, http.MethodGet, "/api/team", nil, http.Header{"Origin": {"https://site.example.com"}})
	assert.Equal(t, "https://site.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	resp = env.do(env.client, http.MethodGet, "/api/team", nil, http.Header{"Origin": {"https://evil.example.com"}})
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestOriginHosts(t *testing.T) {
	assert.Equal(t, []string{"site.example.com", "localhost:3000"},
		originHosts([]string{"https://site.example.com/", "http://localhost:3000", "*", ""}))
}

func TestMetricsAndHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(env.client, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[HealthResponse](t, resp).Database)

	resp = env.do(env.client, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/health",status="200"} 1`)
}
