package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes serves the site pages and the unauthenticated JSON API
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/", handlers.publicHandler.homePage())
	r.Get("/portfolio/{index}", handlers.publicHandler.projectPage())
	r.Get("/health", handlers.healthHandler.health())

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", handlers.publicHandler.getHome())
		r.Get("/projects", handlers.publicHandler.getPortfolio())
		r.Get("/projects/{index}", handlers.publicHandler.getProject())
		r.Get("/team", handlers.publicHandler.getTeam())
		r.Get("/reviews", handlers.publicHandler.getReviews())
		r.Post("/contact", handlers.publicHandler.submitContact())
		r.Post("/applications", handlers.publicHandler.submitApplication())
	})
}

// setupAdminRoutes sets up the session endpoints and the routes behind the admin gate
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, csrf func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if csrf != nil {
				r.Use(csrf)
			}
			r.Post("/login", handlers.authHandler.login())
			r.Post("/logout", handlers.authHandler.logout())
			r.Get("/session", handlers.authHandler.session())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			if csrf != nil {
				r.Use(csrf)
			}

			// Modal endpoints
			r.Post("/modals", handlers.modalHandler.openModal())
			r.Route("/modals/{modalID}", func(r chi.Router) {
				r.Get("/", handlers.modalHandler.getModal())
				r.Patch("/", handlers.modalHandler.editModal())
				r.Delete("/", handlers.modalHandler.closeModal())
				r.Post("/crop", handlers.modalHandler.stageCrop())
				r.Delete("/crop", handlers.modalHandler.cancelCrop())
				r.Post("/images", handlers.modalHandler.addImage())
				r.Post("/images/move", handlers.modalHandler.moveImage())
				r.Delete("/images/{index}", handlers.modalHandler.removeImage())
				r.Post("/submit", handlers.modalHandler.submitModal())
			})

			// Record endpoints
			r.Get("/applications/positions", handlers.adminHandler.listPositions())
			r.Get("/applications/{id}", handlers.adminHandler.getApplication())
			r.Patch("/applications/{id}/status", handlers.adminHandler.updateApplicationStatus())
			r.Get("/messages/{id}", handlers.adminHandler.getMessage())
			r.Patch("/reviews/{id}/visibility", handlers.adminHandler.setReviewVisibility())

			// Table endpoints
			r.Get("/{entity}", handlers.adminHandler.listTable())
			r.Delete("/{entity}/{id}", handlers.adminHandler.deleteRecord())
		})
	})
}
