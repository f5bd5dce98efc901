package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/imaging"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/render"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

const (
	contactSentMessage     = "Message sent successfully! I'll get back to you soon."
	applicationSentMessage = "Application submitted successfully! We'll be in touch."
	fillAllFieldsMessage   = "Please fill in all fields."
	invalidEmailMessage    = "Please enter a valid email address."
)

// Notifier is told about new public submissions. Failures never fail the submission.
type Notifier interface {
	Configured() bool
	NotifyContact(ctx context.Context, msg *models.ContactMessage) error
	NotifyApplication(ctx context.Context, app *models.JobApplication) error
}

type contactSink interface {
	Add(ctx context.Context, message *models.ContactMessage) error
}

type applicationSink interface {
	Add(ctx context.Context, application *models.JobApplication) error
}

type publicHandler struct {
	responder    Responder
	logger       zerolog.Logger
	renderer     *render.Renderer
	messages     contactSink
	applications applicationSink
	resumes      *storage.Uploader
	notifier     Notifier
	metrics      *metrics
}

func newPublicHandler(renderer *render.Renderer, messages contactSink, applications applicationSink, resumes *storage.Uploader, notifier Notifier, m *metrics) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()
	return publicHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		renderer:     renderer,
		messages:     messages,
		applications: applications,
		resumes:      resumes,
		notifier:     notifier,
		metrics:      m,
	}
}

// homePage renders the public site with the portfolio, team and review sections
// @Summary Home page
// @Tags Public
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (h publicHandler) homePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := h.renderer.Home(r.Context())
		h.responder.WriteHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
			return h.renderer.Execute(buf, "home", view)
		})
	}
}

// projectPage renders the detail overlay for the card at index
// @Summary Project detail fragment
// @Tags Public
// @Produce html
// @Param index path int true "Card index on the portfolio grid"
// @Success 200 {string} string "HTML fragment"
// @Failure 404 {object} ErrorResponse
// @Router /portfolio/{index} [get]
func (h publicHandler) projectPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := h.projectDetail(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
			return h.renderer.Execute(buf, "project", detail)
		})
	}
}

// getPortfolio returns the portfolio grid
// @Summary Portfolio
// @Description Up to 12 most recent projects. fallback=true means the static grid should stay.
// @Tags Public
// @Produce json
// @Success 200 {object} render.PortfolioView
// @Router /api/projects [get]
func (h publicHandler) getPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.renderer.Portfolio(r.Context()))
	}
}

// getProject returns the card at index with its carousel slides
// @Summary Project detail
// @Tags Public
// @Produce json
// @Param index path int true "Card index"
// @Success 200 {object} render.ProjectDetail
// @Failure 404 {object} ErrorResponse
// @Router /api/projects/{index} [get]
func (h publicHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := h.projectDetail(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, detail)
	}
}

func (h publicHandler) projectDetail(r *http.Request) (render.ProjectDetail, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return render.ProjectDetail{}, errs.NewNotFound("project")
	}
	return h.renderer.ProjectDetail(r.Context(), index)
}

// getTeam returns the active team members
// @Summary Team
// @Tags Public
// @Produce json
// @Success 200 {object} render.TeamView
// @Router /api/team [get]
func (h publicHandler) getTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.renderer.Team(r.Context()))
	}
}

// getReviews returns visible reviews with the rating summary
// @Summary Reviews
// @Tags Public
// @Produce json
// @Success 200 {object} render.ReviewsView
// @Router /api/reviews [get]
func (h publicHandler) getReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.renderer.Reviews(r.Context()))
	}
}

// getHome returns all three public sections
// @Summary Home sections
// @Tags Public
// @Produce json
// @Success 200 {object} render.HomeView
// @Router /api/home [get]
func (h publicHandler) getHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.renderer.Home(r.Context()))
	}
}

// submitContact stores a contact form message
// @Summary Contact form
// @Tags Public
// @Accept json
// @Produce json
// @Param body body ContactRequest true "Message"
// @Success 201 {object} SubmissionResponse
// @Failure 400 {object} ErrorResponse "Please fill in all fields."
// @Router /api/contact [post]
func (h publicHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg := &models.ContactMessage{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.TrimSpace(req.Email),
			Subject: strings.TrimSpace(req.Subject),
			Message: strings.TrimSpace(req.Message),
		}
		if err := validateContact(msg); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.messages.Add(r.Context(), msg); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("insert", "message", err))
			return
		}
		h.metrics.submissions.WithLabelValues("contact").Inc()

		h.notify(r.Context(), "contact", func(ctx context.Context) error {
			return h.notifier.NotifyContact(ctx, msg)
		})
		h.responder.WriteJSONStatus(w, http.StatusCreated, SubmissionResponse{ID: msg.ID.String(), Message: contactSentMessage})
	}
}

func validateContact(msg *models.ContactMessage) error {
	for _, f := range []struct{ name, value string }{
		{"name", msg.Name}, {"email", msg.Email}, {"subject", msg.Subject}, {"message", msg.Message},
	} {
		if f.value == "" {
			err := errs.BadRequest(fillAllFieldsMessage)
			err.Field = f.name
			return err
		}
	}
	if !admin.ValidEmail(msg.Email) {
		err := errs.BadRequest(invalidEmailMessage)
		err.Field = "email"
		return err
	}
	return nil
}

// submitApplication stores a job application with an optional resume
// @Summary Job application
// @Tags Public
// @Accept multipart/form-data
// @Produce json
// @Param full_name formData string true "Full name"
// @Param email formData string true "Email"
// @Param position formData string true "Position"
// @Param resume formData file false "PDF or Word resume"
// @Success 201 {object} SubmissionResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 413 {object} ErrorResponse "Resume size must be less than 5MB"
// @Failure 503 {object} ErrorResponse "Resume storage is not configured"
// @Router /api/applications [post]
func (h publicHandler) submitApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
		if err := r.ParseMultipartForm(maxMultipartBody); err != nil {
			h.responder.WriteError(w, multipartError(err, errs.ErrResumeTooLarge, "resume"))
			return
		}

		app, err := applicationFromForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		resume, err := readResume(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if resume != nil {
			url, err := h.resumes.Upload(r.Context(), *resume, storage.FolderResumes, nil)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			app.ResumeURL = &url
		}

		if err := h.applications.Add(r.Context(), app); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("insert", "application", err))
			return
		}
		h.metrics.submissions.WithLabelValues("application").Inc()

		h.notify(r.Context(), "application", func(ctx context.Context) error {
			return h.notifier.NotifyApplication(ctx, app)
		})
		h.responder.WriteJSONStatus(w, http.StatusCreated, SubmissionResponse{ID: app.ID.String(), Message: applicationSentMessage})
	}
}

func applicationFromForm(r *http.Request) (*models.JobApplication, error) {
	field := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	optional := func(name string) *string {
		if v := field(name); v != "" {
			return &v
		}
		return nil
	}

	app := &models.JobApplication{
		FullName:     field("full_name"),
		Email:        field("email"),
		Position:     field("position"),
		Phone:        optional("phone"),
		CoverLetter:  optional("cover_letter"),
		PortfolioURL: optional("portfolio_url"),
		LinkedInURL:  optional("linkedin_url"),
		GithubURL:    optional("github_url"),
	}
	for _, f := range []struct{ name, value string }{
		{"full_name", app.FullName}, {"email", app.Email}, {"position", app.Position},
	} {
		if f.value == "" {
			return nil, errs.NewMissingRequiredFieldError(f.name)
		}
	}
	if !admin.ValidEmail(app.Email) {
		err := errs.BadRequest(invalidEmailMessage)
		err.Field = "email"
		return nil, err
	}
	if raw := field("experience_years"); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil || years < 0 {
			return nil, errs.NewInvalidFieldError("experience_years", "must be a whole number of years")
		}
		app.ExperienceYears = &years
	}
	return app, nil
}

// readResume returns nil when no resume was attached.
func readResume(r *http.Request) (*storage.File, error) {
	file, header, err := r.FormFile("resume")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	declared := header.Header.Get("Content-Type")
	if err := imaging.ValidateResume(declared, int64(len(data)), data); err != nil {
		return nil, err
	}
	return &storage.File{
		Name:        header.Filename,
		ContentType: imaging.DetectType(declared, data),
		Data:        data,
	}, nil
}

// notify sends a best-effort notification after the response-relevant work is done.
func (h publicHandler) notify(ctx context.Context, kind string, send func(context.Context) error) {
	if h.notifier == nil || !h.notifier.Configured() {
		return
	}
	if err := send(context.WithoutCancel(ctx)); err != nil {
		h.logger.Warn().Err(err).Str("kind", kind).Msg("notification failed")
	}
}
