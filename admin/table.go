package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// Entity names an admin table.
type Entity string

const (
	EntityProjects     Entity = "projects"
	EntityTeam         Entity = "team"
	EntityApplications Entity = "applications"
	EntityMessages     Entity = "messages"
	EntityReviews      Entity = "reviews"
)

var entityNouns = map[Entity]string{
	EntityProjects:     "project",
	EntityTeam:         "team member",
	EntityApplications: "application",
	EntityMessages:     "message",
	EntityReviews:      "review",
}

var emptyMessages = map[Entity]string{
	EntityProjects:     "No projects yet. Add your first project!",
	EntityTeam:         "No team members yet.",
	EntityApplications: "No applications yet.",
	EntityMessages:     "No messages yet.",
	EntityReviews:      "No reviews yet.",
}

func ParseEntity(s string) (Entity, error) {
	e := Entity(s)
	if _, ok := entityNouns[e]; !ok {
		return "", errs.NewNotFoundError("unknown table " + s)
	}
	return e, nil
}

// TableView is a rendered admin table. Exactly one of Rows, Empty or Error describes the body.
type TableView struct {
	Entity  Entity            `json:"entity"`
	Columns []string          `json:"columns"`
	Rows    []Row             `json:"rows"`
	Empty   string            `json:"empty,omitempty"`
	Error   string            `json:"error,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

type Row struct {
	ID        uuid.UUID `json:"id"`
	Cells     []string  `json:"cells"`
	Badge     string    `json:"badge,omitempty"`
	Highlight bool      `json:"highlight,omitempty"`
	Actions   []Action  `json:"actions"`
}

// Action is a control on a row. Confirm, when set, must be acknowledged before the call.
type Action struct {
	Name    string `json:"name"`
	Method  string `json:"method"`
	Href    string `json:"href"`
	Confirm string `json:"confirm,omitempty"`
}

// Tables loads admin tables and runs the row actions that do not need a form.
type Tables struct {
	stores Stores
	logger zerolog.Logger
}

func NewTables(stores Stores) *Tables {
	return &Tables{
		stores: stores,
		logger: log.With().Str("component", "tables").Logger(),
	}
}

// Load queries one table newest first. On failure the returned view carries an error row
// and the cause is logged; nothing is retried.
func (t *Tables) Load(ctx context.Context, entity Entity, filters map[string]string) (TableView, error) {
	view := TableView{Entity: entity, Rows: []Row{}}
	opts, err := listOptions(entity, filters)
	if err != nil {
		return view, err
	}
	if len(opts.Filters) > 0 {
		view.Filters = filters
	}

	switch entity {
	case EntityProjects:
		err = t.loadProjects(ctx, &view, opts)
	case EntityTeam:
		err = t.loadTeam(ctx, &view, opts)
	case EntityApplications:
		err = t.loadApplications(ctx, &view, opts)
	case EntityMessages:
		err = t.loadMessages(ctx, &view, opts)
	case EntityReviews:
		err = t.loadReviews(ctx, &view, opts)
	default:
		return view, errs.NewNotFoundError("unknown table " + string(entity))
	}
	if err != nil {
		t.logger.Error().Err(err).Str("entity", string(entity)).Msg("error loading table")
		view.Rows = []Row{}
		view.Error = "Error loading " + string(entity)
		return view, errs.NewDatabaseError("load", string(entity), err)
	}
	if len(view.Rows) == 0 {
		view.Empty = emptyMessages[entity]
	}
	return view, nil
}

func listOptions(entity Entity, filters map[string]string) (database.ListOptions, error) {
	opts := database.ListOptions{Filters: map[string]any{}}
	if entity != EntityApplications {
		return opts, nil
	}
	if s := strings.TrimSpace(filters["status"]); s != "" {
		status, err := models.ParseApplicationStatus(s)
		if err != nil {
			return opts, errs.NewInvalidFieldError("status", err.Error())
		}
		opts.Filters["status"] = status
	}
	if p := strings.TrimSpace(filters["position"]); p != "" {
		opts.Filters["position"] = p
	}
	return opts, nil
}

func (t *Tables) loadProjects(ctx context.Context, view *TableView, opts database.ListOptions) error {
	view.Columns = []string{"Title", "Platform", "Technologies", "Images", "Created"}
	projects, err := t.stores.Projects.FindAll(ctx, opts)
	if err != nil {
		return err
	}
	for _, p := range projects {
		view.Rows = append(view.Rows, Row{
			ID:      p.ID,
			Cells:   []string{p.Title, p.Platform, p.Technologies, strconv.Itoa(len(p.Images())), formatDate(p.CreatedAt)},
			Actions: []Action{editAction(KindProject, p.ID), deleteAction(EntityProjects, p.ID)},
		})
	}
	return nil
}

func (t *Tables) loadTeam(ctx context.Context, view *TableView, opts database.ListOptions) error {
	view.Columns = []string{"Name", "Role", "Email", "Status", "Added"}
	members, err := t.stores.TeamMembers.FindAll(ctx, opts)
	if err != nil {
		return err
	}
	for _, m := range members {
		status := "Active"
		if !m.Active {
			status = "Inactive"
		}
		view.Rows = append(view.Rows, Row{
			ID:      m.ID,
			Cells:   []string{m.Name, m.Role, orDash(deref(m.Email)), status, formatDate(m.CreatedAt)},
			Badge:   strings.ToLower(status),
			Actions: []Action{editAction(KindTeamMember, m.ID), deleteAction(EntityTeam, m.ID)},
		})
	}
	return nil
}

func (t *Tables) loadApplications(ctx context.Context, view *TableView, opts database.ListOptions) error {
	view.Columns = []string{"Name", "Email", "Position", "Experience", "Status", "Applied"}
	applications, err := t.stores.Applications.FindAll(ctx, opts)
	if err != nil {
		return err
	}
	for _, a := range applications {
		experience := "-"
		if a.ExperienceYears != nil {
			experience = fmt.Sprintf("%d yrs", *a.ExperienceYears)
		}
		href := fmt.Sprintf("/admin/applications/%s", a.ID)
		view.Rows = append(view.Rows, Row{
			ID:    a.ID,
			Cells: []string{a.FullName, a.Email, a.Position, experience, string(a.Status), formatDate(a.CreatedAt)},
			Badge: string(a.Status),
			Actions: []Action{
				{Name: "view", Method: "GET", Href: href},
				{Name: "status", Method: "PATCH", Href: href + "/status"},
				deleteAction(EntityApplications, a.ID),
			},
		})
	}
	return nil
}

func (t *Tables) loadMessages(ctx context.Context, view *TableView, opts database.ListOptions) error {
	view.Columns = []string{"Name", "Email", "Subject", "Status", "Received"}
	messages, err := t.stores.Messages.FindAll(ctx, opts)
	if err != nil {
		return err
	}
	for _, m := range messages {
		status := "Read"
		if !m.Read {
			status = "Unread"
		}
		view.Rows = append(view.Rows, Row{
			ID:        m.ID,
			Cells:     []string{m.Name, m.Email, m.Subject, status, formatDate(m.CreatedAt)},
			Badge:     strings.ToLower(status),
			Highlight: !m.Read,
			Actions: []Action{
				{Name: "view", Method: "GET", Href: fmt.Sprintf("/admin/messages/%s", m.ID)},
				deleteAction(EntityMessages, m.ID),
			},
		})
	}
	return nil
}

func (t *Tables) loadReviews(ctx context.Context, view *TableView, opts database.ListOptions) error {
	view.Columns = []string{"Client", "Rating", "Visible", "Created"}
	reviews, err := t.stores.Reviews.FindAll(ctx, opts)
	if err != nil {
		return err
	}
	for _, r := range reviews {
		visible := "Hidden"
		if r.Visible {
			visible = "Visible"
		}
		view.Rows = append(view.Rows, Row{
			ID:    r.ID,
			Cells: []string{r.ClientName, strconv.Itoa(r.DisplayRating()), visible, formatDate(r.CreatedAt)},
			Badge: strings.ToLower(visible),
			Actions: []Action{
				editAction(KindReview, r.ID),
				{Name: "visibility", Method: "PATCH", Href: fmt.Sprintf("/admin/reviews/%s/visibility", r.ID)},
				deleteAction(EntityReviews, r.ID),
			},
		})
	}
	return nil
}

// Delete removes a record once confirmed. Team members are deactivated rather than removed.
func (t *Tables) Delete(ctx context.Context, entity Entity, id uuid.UUID, confirmed bool) error {
	noun, ok := entityNouns[entity]
	if !ok {
		return errs.NewNotFoundError("unknown table " + string(entity))
	}
	if !confirmed {
		return errs.NewConfirmationRequiredError(noun)
	}

	var err error
	switch entity {
	case EntityProjects:
		err = t.stores.Projects.Delete(ctx, id)
	case EntityTeam:
		err = t.stores.TeamMembers.Deactivate(ctx, id)
	case EntityApplications:
		err = t.stores.Applications.Delete(ctx, id)
	case EntityMessages:
		err = t.stores.Messages.Delete(ctx, id)
	case EntityReviews:
		err = t.stores.Reviews.Delete(ctx, id)
	}
	if err != nil {
		return errs.NewDatabaseError("delete", noun, err)
	}
	return nil
}

// UpdateApplicationStatus changes only the status of an application.
func (t *Tables) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*models.JobApplication, error) {
	parsed, err := models.ParseApplicationStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, errs.NewInvalidFieldError("status", err.Error())
	}
	if err := t.stores.Applications.UpdateStatus(ctx, id, parsed); err != nil {
		return nil, errs.NewDatabaseError("update status of", "application", err)
	}
	application, err := t.stores.Applications.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "application", err)
	}
	return application, nil
}

func (t *Tables) ViewApplication(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	application, err := t.stores.Applications.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "application", err)
	}
	return application, nil
}

// ViewMessage returns a message and marks it read the first time it is opened.
func (t *Tables) ViewMessage(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	message, err := t.stores.Messages.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "message", err)
	}
	if message.Read {
		return message, nil
	}
	if err := t.stores.Messages.MarkRead(ctx, id); err != nil {
		return nil, errs.NewDatabaseError("mark read", "message", err)
	}
	message.Read = true
	return message, nil
}

func (t *Tables) SetReviewVisible(ctx context.Context, id uuid.UUID, visible bool) (*models.ClientReview, error) {
	if err := t.stores.Reviews.SetVisible(ctx, id, visible); err != nil {
		return nil, errs.NewDatabaseError("update visibility of", "review", err)
	}
	review, err := t.stores.Reviews.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "review", err)
	}
	return review, nil
}

func editAction(kind Kind, id uuid.UUID) Action {
	return Action{Name: "edit", Method: "POST", Href: fmt.Sprintf("/admin/modals?kind=%s&id=%s", kind, id)}
}

func deleteAction(entity Entity, id uuid.UUID) Action {
	return Action{
		Name:    "delete",
		Method:  "DELETE",
		Href:    fmt.Sprintf("/admin/%s/%s?confirm=true", entity, id),
		Confirm: fmt.Sprintf("Are you sure you want to delete this %s?", entityNouns[entity]),
	}
}

func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
