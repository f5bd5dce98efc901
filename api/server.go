package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/render"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

// Dependencies are the collaborators built in main. Images and Resumes may wrap a nil
// bucket, in which case uploads fail with a configuration error.
type Dependencies struct {
	Database database.Database
	Gate     *admin.Gate
	Modals   admin.ModalStore
	Images   *storage.Uploader
	Resumes  *storage.Uploader
	Notifier Notifier
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(deps Dependencies, c map[string]string) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router, err := newRouter(deps, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	sessions    sessions.Store
	metrics     *metrics
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withSessionStore(store sessions.Store) func(*router) {
	return func(r *router) {
		r.sessions = store
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) (*chi.Mux, error) {
	router := router{config: map[string]string{}, startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}
	router.metrics = newMetrics()

	secure := config.GetBool(router.config, "COOKIE_SECURE", false)
	if router.sessions == nil {
		key := []byte(config.GetString(router.config, "SESSION_KEY", ""))
		if len(key) == 0 {
			log.Warn().Msg("SESSION_KEY not set, admin sessions will not survive a restart")
			key = securecookie.GenerateRandomKey(32)
		}
		router.sessions = newSessionStore(key, secure)
	}

	renderer, err := render.New(
		deps.Database.ProjectRepo(),
		deps.Database.TeamMemberRepo(),
		deps.Database.ClientReviewRepo(),
		render.Options{
			ProjectLimit: config.GetInt(router.config, "PUBLIC_PROJECT_LIMIT", render.DefaultProjectLimit),
			ReviewLimit:  config.GetInt(router.config, "PUBLIC_REVIEW_LIMIT", render.DefaultReviewLimit),
		},
	)
	if err != nil {
		return nil, err
	}

	handlers := initializeHandlers(deps, renderer, &router)
	authMiddleware := newAuthMiddleware(deps.Gate, router.sessions)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	var csrf func(http.Handler) http.Handler
	if key := config.GetString(router.config, "CSRF_KEY", ""); key != "" {
		if len(key) != 32 {
			return nil, fmt.Errorf("CSRF_KEY must be 32 bytes, got %d", len(key))
		}
		csrf = csrfMiddleware([]byte(key), secure, originHosts(acceptedOrigins))
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(router.metrics.middleware)
	chiRouter.Use(HTTPLoggingMiddleware(config.GetString(router.config, "LOG_FORMAT", "json")))
	chiRouter.Use(SecurityHeadersMiddleware)
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	chiRouter.Method(http.MethodGet, "/metrics", router.metrics.handler())
	setupPublicRoutes(chiRouter, handlers)
	setupAdminRoutes(chiRouter, handlers, authMiddleware, csrf)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
