package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

const (
	sessionName             = "portfolio_admin"
	sessionAuthenticatedKey = "authenticated"
	incorrectPassword       = "Incorrect password. Please try again."
)

// newSessionStore returns a cookie store whose cookie lives as long as the browser session.
func newSessionStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options.Path = "/"
	store.Options.MaxAge = 0
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

func sessionAuthenticated(store sessions.Store, r *http.Request) bool {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return false
	}
	auth, ok := session.Values[sessionAuthenticatedKey].(bool)
	return ok && auth
}

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	gate      *admin.Gate
	sessions  sessions.Store
}

func newAuthHandler(gate *admin.Gate, store sessions.Store) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()
	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		gate:      gate,
		sessions:  store,
	}
}

// login checks the admin password and sets the session flag
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Admin password"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse "Incorrect password"
// @Failure 503 {object} ErrorResponse "No admin password configured"
// @Router /admin/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password, err := readPassword(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !h.gate.Configured() {
			h.responder.WriteError(w, errs.NewConfigError("admin password"))
			return
		}

		result := h.gate.Authenticate(password)
		if !result.Granted {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("rejected admin login")
			h.responder.WriteError(w, errs.NewUnauthorizedError(incorrectPassword))
			return
		}

		// A stale or undecodable cookie still yields a fresh session to overwrite.
		session, _ := h.sessions.Get(r, sessionName)
		session.Values[sessionAuthenticatedKey] = true
		session.Options.MaxAge = 0
		if err := session.Save(r, w); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("could not save session", err))
			return
		}

		writeCSRFToken(w, r)
		h.responder.WriteJSON(w, SessionResponse{
			Authenticated: true,
			Token:         result.Token,
			ExpiresAt:     result.ExpiresAt,
		})
	}
}

// logout clears the session flag
// @Summary Admin logout
// @Tags Admin
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /admin/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.sessions.Get(r, sessionName)
		session.Values[sessionAuthenticatedKey] = false
		session.Options.MaxAge = -1
		if err := session.Save(r, w); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("could not clear session", err))
			return
		}
		h.responder.WriteJSON(w, SessionResponse{Authenticated: false})
	}
}

// session reports whether the caller holds the admin flag
// @Summary Admin session state
// @Tags Admin
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /admin/session [get]
func (h authHandler) session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authenticated := sessionAuthenticated(h.sessions, r)
		if !authenticated {
			if raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && raw != "" {
				authenticated = h.gate.VerifyToken(raw) == nil
			}
		}
		writeCSRFToken(w, r)
		h.responder.WriteJSON(w, SessionResponse{Authenticated: authenticated})
	}
}

func readPassword(w http.ResponseWriter, r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return "", err
		}
		return req.Password, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := r.ParseForm(); err != nil {
		return "", errs.NewMalformedPayloadError("form", err)
	}
	return r.PostFormValue("password"), nil
}

// writeCSRFToken exposes the token for the next unsafe admin call when CSRF protection is on.
func writeCSRFToken(w http.ResponseWriter, r *http.Request) {
	if token := csrf.Token(r); token != "" {
		w.Header().Set("X-CSRF-Token", token)
	}
}
