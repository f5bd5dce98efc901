package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	tables    *admin.Tables
	positions positionSource
}

type positionSource interface {
	Positions(ctx context.Context) ([]string, error)
}

func newAdminHandler(tables *admin.Tables, positions positionSource) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()
	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tables:    tables,
		positions: positions,
	}
}

// TableErrorResponse carries the error row of a table that failed to load.
type TableErrorResponse struct {
	ErrorResponse
	Table admin.TableView `json:"table"`
}

// listTable loads one admin table, newest first
// @Summary Admin table
// @Tags Admin
// @Produce json
// @Param entity path string true "projects, team, applications, messages or reviews"
// @Param status query string false "Application status filter"
// @Param position query string false "Application position filter"
// @Success 200 {object} admin.TableView
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} TableErrorResponse "Error loading table"
// @Router /admin/{entity} [get]
func (h adminHandler) listTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity, err := admin.ParseEntity(chi.URLParam(r, "entity"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filters := map[string]string{}
		for _, key := range []string{"status", "position"} {
			if v := r.URL.Query().Get(key); v != "" {
				filters[key] = v
			}
		}

		view, err := h.tables.Load(r.Context(), entity, filters)
		if err != nil {
			if view.Error == "" {
				h.responder.WriteError(w, err)
				return
			}
			h.responder.WriteJSONStatus(w, errs.StatusCode(err), TableErrorResponse{
				ErrorResponse: ErrorResponse{Error: view.Error, Status: "error"},
				Table:         view,
			})
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// listPositions returns the distinct positions applied for, for the position filter
// @Summary Application positions
// @Tags Admin
// @Produce json
// @Success 200 {array} string
// @Router /admin/applications/positions [get]
func (h adminHandler) listPositions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		positions, err := h.positions.Positions(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list positions of", "applications", err))
			return
		}
		h.responder.WriteJSON(w, positions)
	}
}

// deleteRecord removes a record once the caller confirms
// @Summary Delete record
// @Description Team members are deactivated instead of removed. Without confirm=true nothing happens.
// @Tags Admin
// @Produce json
// @Param entity path string true "Table"
// @Param id path string true "Record ID" format(uuid)
// @Param confirm query bool true "Must be true"
// @Success 200 {object} admin.TableView "Reloaded table"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Confirmation required"
// @Router /admin/{entity}/{id} [delete]
func (h adminHandler) deleteRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity, err := admin.ParseEntity(chi.URLParam(r, "entity"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

		if err := h.tables.Delete(r.Context(), entity, id, confirmed); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("entity", string(entity)).Str("id", id.String()).Msg("record deleted")

		view, err := h.tables.Load(r.Context(), entity, nil)
		if err != nil {
			h.responder.WriteJSONStatus(w, errs.StatusCode(err), TableErrorResponse{
				ErrorResponse: ErrorResponse{Error: view.Error, Status: "error"},
				Table:         view,
			})
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// getApplication returns the full application
// @Summary View application
// @Tags Admin
// @Produce json
// @Param id path string true "Application ID" format(uuid)
// @Success 200 {object} models.JobApplication
// @Failure 404 {object} ErrorResponse
// @Router /admin/applications/{id} [get]
func (h adminHandler) getApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		application, err := h.tables.ViewApplication(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, application)
	}
}

// updateApplicationStatus changes only the status column
// @Summary Update application status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Application ID" format(uuid)
// @Param body body StatusRequest true "New status"
// @Success 200 {object} models.JobApplication
// @Failure 400 {object} ErrorResponse "Unknown status"
// @Failure 404 {object} ErrorResponse
// @Router /admin/applications/{id}/status [patch]
func (h adminHandler) updateApplicationStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req StatusRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		application, err := h.tables.UpdateApplicationStatus(r.Context(), id, req.Status)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, application)
	}
}

// getMessage returns a contact message and marks it read
// @Summary View message
// @Tags Admin
// @Produce json
// @Param id path string true "Message ID" format(uuid)
// @Success 200 {object} models.ContactMessage
// @Failure 404 {object} ErrorResponse
// @Router /admin/messages/{id} [get]
func (h adminHandler) getMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		message, err := h.tables.ViewMessage(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, message)
	}
}

// setReviewVisibility shows or hides a review on the public site
// @Summary Review visibility
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Review ID" format(uuid)
// @Param body body VisibilityRequest true "Visibility"
// @Success 200 {object} models.ClientReview
// @Router /admin/reviews/{id}/visibility [patch]
func (h adminHandler) setReviewVisibility() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req VisibilityRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		review, err := h.tables.SetReviewVisible(r.Context(), id, req.Visible)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, review)
	}
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}
