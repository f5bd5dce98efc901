package api

import (
	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/render"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	publicHandler publicHandler
	authHandler   authHandler
	adminHandler  adminHandler
	modalHandler  modalHandler
	healthHandler healthHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, renderer *render.Renderer, r *router) *routeHandlers {
	db := deps.Database
	stores := admin.StoresFrom(db)
	tables := admin.NewTables(stores)
	forms := admin.NewForms(stores, deps.Modals, deps.Images, tables)

	return &routeHandlers{
		publicHandler: newPublicHandler(renderer, db.ContactMessageRepo(), db.JobApplicationRepo(), deps.Resumes, deps.Notifier, r.metrics),
		authHandler:   newAuthHandler(deps.Gate, r.sessions),
		adminHandler:  newAdminHandler(tables, db.JobApplicationRepo()),
		modalHandler:  newModalHandler(forms, r.metrics),
		healthHandler: newHealthHandler(db, r.startupTime),
	}
}
