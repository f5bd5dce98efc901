package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrongPasswordLeavesSessionUnset(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(env.client, http.MethodPost, "/admin/login", LoginRequest{Password: "nope"}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "Incorrect password. Please try again.", body.Error)

	session := decode[SessionResponse](t, env.do(env.client, http.MethodGet, "/admin/session", nil, nil))
	assert.False(t, session.Authenticated)

	resp = env.do(env.client, http.MethodGet, "/admin/projects", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRightPasswordSetsSessionUntilLogout(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(env.client, http.MethodPost, "/admin/login", LoginRequest{Password: testPassword}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[SessionResponse](t, resp)
	assert.True(t, login.Authenticated)
	assert.NotEmpty(t, login.Token)

	session := decode[SessionResponse](t, env.do(env.client, http.MethodGet, "/admin/session", nil, nil))
	assert.True(t, session.Authenticated)
	assert.Equal(t, http.StatusOK, env.do(env.client, http.MethodGet, "/admin/projects", nil, nil).StatusCode)

	resp = env.do(env.client, http.MethodPost, "/admin/logout", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	session = decode[SessionResponse](t, env.do(env.client, http.MethodGet, "/admin/session", nil, nil))
	assert.False(t, session.Authenticated)
	assert.Equal(t, http.StatusUnauthorized, env.do(env.client, http.MethodGet, "/admin/projects", nil, nil).StatusCode)
}

func TestSessionCookieLastsForBrowserSession(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(env.client, http.MethodPost, "/admin/login", LoginRequest{Password: testPassword}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Zero(t, cookie.MaxAge)
	assert.True(t, cookie.Expires.IsZero())
}

func TestFormLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(env.client, http.MethodPost, "/admin/login",
		strings.NewReader("password="+testPassword),
		http.Header{"Content-Type": {"application/x-www-form-urlencoded"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerTokenAuthenticates(t *testing.T) {
	env := newTestEnv(t, nil)

	login := decode[SessionResponse](t, env.do(env.client, http.MethodPost, "/admin/login", LoginRequest{Password: testPassword}, nil))
	require.NotEmpty(t, login.Token)

	stranger := &http.Client{}
	resp := env.do(stranger, http.MethodGet, "/admin/reviews", nil, http.Header{"Authorization": {"Bearer " + login.Token}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(stranger, http.MethodGet, "/admin/reviews", nil, http.Header{"Authorization": {"Bearer forged"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCSRFProtectsCookieSessions(t *testing.T) {
	env := newTestEnv(t, map[string]string{"CSRF_KEY": "abcdefghijklmnopqrstuvwxyz012345"})

	resp := env.do(env.client, http.MethodPost, "/admin/login", LoginRequest{Password: testPassword}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(env.client, http.MethodGet, "/admin/session", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := resp.Header.Get("X-CSRF-Token")
	require.NotEmpty(t, token)

	resp = env.do(env.client, http.MethodPost, "/admin/login", LoginRequest{Password: testPassword}, http.Header{"X-Csrf-Token": {token}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[SessionResponse](t, resp)

	resp = env.do(env.client, http.MethodPost, "/admin/modals?kind=review", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(&http.Client{}, http.MethodPost, "/admin/modals?kind=review", nil, http.Header{"Authorization": {"Bearer " + login.Token}})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
