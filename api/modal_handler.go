package api

import (
	"errors"
	"image"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

type modalHandler struct {
	responder Responder
	logger    zerolog.Logger
	forms     *admin.Forms
	metrics   *metrics
}

func newModalHandler(forms *admin.Forms, m *metrics) modalHandler {
	logger := log.With().Str("handlerName", "modalHandler").Logger()
	return modalHandler{
		responder: NewResponder(logger),
		logger:    logger,
		forms:     forms,
		metrics:   m,
	}
}

// openModal opens an add or edit form
// @Summary Open form modal
// @Description Without id the form starts empty (add); with id the record is loaded (edit).
// @Tags Admin Modals
// @Produce json
// @Param kind query string true "project, team or review"
// @Param id query string false "Record ID" format(uuid)
// @Success 201 {object} admin.ModalView
// @Failure 404 {object} ErrorResponse "Record not found"
// @Router /admin/modals [post]
func (h modalHandler) openModal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := admin.Kind(r.URL.Query().Get("kind"))
		if kind == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("kind"))
			return
		}
		var recordID *uuid.UUID
		if raw := r.URL.Query().Get("id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("id", "must be a UUID"))
				return
			}
			recordID = &id
		}

		m, err := h.forms.Open(r.Context(), kind, recordID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, m.View())
	}
}

// getModal returns the current modal state
// @Summary Get form modal
// @Tags Admin Modals
// @Produce json
// @Param modalID path string true "Modal ID"
// @Success 200 {object} admin.ModalView
// @Failure 404 {object} ErrorResponse "Modal closed or expired"
// @Router /admin/modals/{modalID} [get]
func (h modalHandler) getModal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := h.forms.Get(r.Context(), chi.URLParam(r, "modalID"))
		h.writeModal(w, m, err)
	}
}

// editModal stores field values typed so far
// @Summary Edit form values
// @Tags Admin Modals
// @Accept json
// @Produce json
// @Param modalID path string true "Modal ID"
// @Param body body EditModalRequest true "Field values"
// @Success 200 {object} admin.ModalView
// @Failure 409 {object} ErrorResponse "Submission in progress"
// @Router /admin/modals/{modalID} [patch]
func (h modalHandler) editModal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EditModalRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		m, err := h.forms.Edit(r.Context(), chi.URLParam(r, "modalID"), req.Values)
		h.writeModal(w, m, err)
	}
}

// stageCrop validates and crops an uploaded image, keeping it until submit
// @Summary Stage cropped image
// @Description Multipart field "image". Optional x, y and size select the square crop in source pixels.
// @Tags Admin Modals
// @Accept multipart/form-data
// @Produce json
// @Param modalID path string true "Modal ID"
// @Success 200 {object} admin.ModalView
// @Failure 400 {object} ErrorResponse "Please select an image file"
// @Failure 413 {object} ErrorResponse "Image size must be less than 5MB"
// @Router /admin/modals/{modalID}/crop [post]
func (h modalHandler) stageCrop() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
		if err := r.ParseMultipartForm(maxMultipartBody); err != nil {
			h.responder.WriteError(w, multipartError(err, errs.ErrImageTooLarge, "image"))
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewFileValidationError(errs.ErrNotAnImage, "image", http.StatusBadRequest))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		box, err := cropBox(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		m, err := h.forms.StageCrop(r.Context(), chi.URLParam(r, "modalID"), header.Header.Get("Content-Type"), data, box)
		h.writeModal(w, m, err)
	}
}

// cancelCrop drops the staged image
// @Summary Cancel crop
// @Tags Admin Modals
// @Produce json
// @Param modalID path string true "Modal ID"
// @Success 200 {object} admin.ModalView
// @Router /admin/modals/{modalID}/crop [delete]
func (h modalHandler) cancelCrop() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := h.forms.CancelCrop(r.Context(), chi.URLParam(r, "modalID"))
		h.writeModal(w, m, err)
	}
}

// addImage appends a pasted URL to the project gallery
// @Summary Add gallery image
// @Tags Admin Modals
// @Accept json
// @Produce json
// @Param modalID path string true "Modal ID"
// @Param body body AddImageRequest true "Image URL"
// @Success 200 {object} admin.ModalView
// @Router /admin/modals/{modalID}/images [post]
func (h modalHandler) addImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddImageRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		m, err := h.forms.AddImage(r.Context(), chi.URLParam(r, "modalID"), req.URL)
		h.writeModal(w, m, err)
	}
}

// moveImage reorders the gallery; index 0 is the cover
// @Summary Move gallery image
// @Tags Admin Modals
// @Accept json
// @Produce json
// @Param modalID path string true "Modal ID"
// @Param body body MoveImageRequest true "From and to indexes"
// @Success 200 {object} admin.ModalView
// @Failure 400 {object} ErrorResponse "Index out of range"
// @Router /admin/modals/{modalID}/images/move [post]
func (h modalHandler) moveImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MoveImageRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		m, err := h.forms.MoveImage(r.Context(), chi.URLParam(r, "modalID"), req.From, req.To)
		h.writeModal(w, m, err)
	}
}

// removeImage drops an image from the gallery
// @Summary Remove gallery image
// @Tags Admin Modals
// @Produce json
// @Param modalID path string true "Modal ID"
// @Param index path int true "Image index"
// @Success 200 {object} admin.ModalView
// @Router /admin/modals/{modalID}/images/{index} [delete]
func (h modalHandler) removeImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("index", "must be a number"))
			return
		}
		m, err := h.forms.RemoveImage(r.Context(), chi.URLParam(r, "modalID"), index)
		h.writeModal(w, m, err)
	}
}

// submitModal validates, uploads the staged image and saves the record
// @Summary Submit form modal
// @Description On success the modal closes and the reloaded table is returned. On failure the modal stays open with the error.
// @Tags Admin Modals
// @Accept json
// @Produce json
// @Param modalID path string true "Modal ID"
// @Param body body SubmitModalRequest false "Final field values"
// @Success 200 {object} admin.SubmitResult
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 409 {object} ErrorResponse "Submission already in progress"
// @Failure 503 {object} ErrorResponse "Object storage is not configured"
// @Router /admin/modals/{modalID}/submit [post]
func (h modalHandler) submitModal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitModalRequest
		if r.ContentLength != 0 {
			if err := decodeJSON(w, r, &req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		result, err := h.forms.Submit(r.Context(), chi.URLParam(r, "modalID"), req.Values)
		if err != nil {
			h.metrics.modalSubmit.WithLabelValues(outcome(err)).Inc()
			h.responder.WriteError(w, err)
			return
		}
		h.metrics.modalSubmit.WithLabelValues(result.Action).Inc()
		h.responder.WriteJSON(w, result)
	}
}

// closeModal discards the modal and anything staged on it
// @Summary Close form modal
// @Tags Admin Modals
// @Produce json
// @Param modalID path string true "Modal ID"
// @Success 200 {object} MessageResponse
// @Router /admin/modals/{modalID} [delete]
func (h modalHandler) closeModal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.forms.Close(r.Context(), chi.URLParam(r, "modalID")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: "closed"})
	}
}

func (h modalHandler) writeModal(w http.ResponseWriter, m *admin.Modal, err error) {
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}
	h.responder.WriteJSON(w, m.View())
}

// cropBox reads the optional square selection. All of x, y and size must be given together.
func cropBox(r *http.Request) (*image.Rectangle, error) {
	x, y, size := r.FormValue("x"), r.FormValue("y"), r.FormValue("size")
	if x == "" && y == "" && size == "" {
		return nil, nil
	}
	values := make([]int, 0, 3)
	for _, f := range []struct{ name, raw string }{{"x", x}, {"y", y}, {"size", size}} {
		n, err := strconv.Atoi(f.raw)
		if err != nil || n < 0 {
			return nil, errs.NewInvalidFieldError(f.name, "must be a non-negative integer")
		}
		values = append(values, n)
	}
	if values[2] == 0 {
		return nil, errs.NewInvalidFieldError("size", "must be positive")
	}
	box := image.Rect(values[0], values[1], values[0]+values[2], values[1]+values[2])
	return &box, nil
}

// multipartError maps a body over the hard limit to the size message of the file field.
func multipartError(err error, tooLargeErr error, field string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.NewFileValidationError(tooLargeErr, field, http.StatusRequestEntityTooLarge)
	}
	return errs.NewMalformedPayloadError("multipart", err)
}

func outcome(err error) string {
	switch errs.StatusCode(err) {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return "invalid"
	case http.StatusConflict:
		return "conflict"
	default:
		return "failed"
	}
}
