package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

type imageMode int

const (
	noImages imageMode = iota
	singleImage
	imageGallery
)

// pastedImageField holds a URL typed into a project form; it is appended to the gallery on submit.
const pastedImageField = "image_url_input"

// binding maps one record type to form values and back.
type binding interface {
	fields() []string
	empty() Values
	imageMode() imageMode
	folder() string
	entity() Entity
	load(ctx context.Context, id uuid.UUID) (Values, ImageList, error)
	// validate runs every client-side check without touching the database.
	validate(v Values, images ImageList) error
	save(ctx context.Context, editing *uuid.UUID, v Values, images ImageList) (any, error)
}

type projectBinding struct{ store ProjectStore }

func (projectBinding) fields() []string {
	return []string{"title", "description", "platform", "technologies", "project_link", pastedImageField}
}

func (b projectBinding) empty() Values      { return blank(b.fields()) }
func (projectBinding) imageMode() imageMode { return imageGallery }
func (projectBinding) folder() string       { return storage.FolderProjects }
func (projectBinding) entity() Entity       { return EntityProjects }

func (b projectBinding) load(ctx context.Context, id uuid.UUID) (Values, ImageList, error) {
	p, err := b.store.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	v := b.empty()
	v["title"] = p.Title
	v["description"] = p.Description
	v["platform"] = p.Platform
	v["technologies"] = p.Technologies
	v["project_link"] = deref(p.ProjectLink)
	return v, ImageList(p.Images()), nil
}

func buildProject(v Values, images ImageList) (*models.Project, error) {
	p := &models.Project{ProjectLink: optional(v, "project_link")}
	var err error
	if p.Title, err = required(v, "title"); err != nil {
		return nil, err
	}
	if p.Description, err = required(v, "description"); err != nil {
		return nil, err
	}
	if p.Platform, err = required(v, "platform"); err != nil {
		return nil, err
	}
	if p.Technologies, err = required(v, "technologies"); err != nil {
		return nil, err
	}
	p.SetImages(images)
	return p, nil
}

func (projectBinding) validate(v Values, images ImageList) error {
	_, err := buildProject(v, images)
	return err
}

func (b projectBinding) save(ctx context.Context, editing *uuid.UUID, v Values, images ImageList) (any, error) {
	p, err := buildProject(v, images)
	if err != nil {
		return nil, err
	}
	if editing == nil {
		return p, b.store.Add(ctx, p)
	}
	p.ID = *editing
	return p, b.store.Update(ctx, p)
}

type teamBinding struct{ store TeamMemberStore }

func (teamBinding) fields() []string {
	return []string{"name", "role", "bio", "email", "image_url", "linkedin_url", "github_url"}
}

func (b teamBinding) empty() Values {
	return blank(b.fields())
}

func (teamBinding) imageMode() imageMode { return singleImage }
func (teamBinding) folder() string       { return storage.FolderTeam }
func (teamBinding) entity() Entity       { return EntityTeam }

func (b teamBinding) load(ctx context.Context, id uuid.UUID) (Values, ImageList, error) {
	m, err := b.store.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	v := b.empty()
	v["name"] = m.Name
	v["role"] = m.Role
	v["bio"] = m.Bio
	v["email"] = deref(m.Email)
	v["image_url"] = deref(m.ImageURL)
	v["linkedin_url"] = deref(m.LinkedInURL)
	v["github_url"] = deref(m.GithubURL)
	return v, nil, nil
}

// buildTeamMember always yields an active member: saving the form restores a deactivated one.
func buildTeamMember(v Values) (*models.TeamMember, error) {
	m := &models.TeamMember{
		ImageURL:    optional(v, "image_url"),
		LinkedInURL: optional(v, "linkedin_url"),
		GithubURL:   optional(v, "github_url"),
		Active:      true,
	}
	var err error
	if m.Name, err = required(v, "name"); err != nil {
		return nil, err
	}
	if m.Role, err = required(v, "role"); err != nil {
		return nil, err
	}
	if m.Bio, err = required(v, "bio"); err != nil {
		return nil, err
	}
	if m.Email, err = optionalEmail(v, "email"); err != nil {
		return nil, err
	}
	return m, nil
}

func (teamBinding) validate(v Values, _ ImageList) error {
	_, err := buildTeamMember(v)
	return err
}

func (b teamBinding) save(ctx context.Context, editing *uuid.UUID, v Values, _ ImageList) (any, error) {
	m, err := buildTeamMember(v)
	if err != nil {
		return nil, err
	}
	if editing == nil {
		return m, b.store.Add(ctx, m)
	}
	m.ID = *editing
	return m, b.store.Update(ctx, m)
}

type reviewBinding struct{ store ClientReviewStore }

func (reviewBinding) fields() []string {
	return []string{"client_name", "review_text", "role_or_location", "rating", "visible"}
}

func (b reviewBinding) empty() Values {
	v := blank(b.fields())
	v["rating"] = "5"
	v["visible"] = "true"
	return v
}

func (reviewBinding) imageMode() imageMode { return noImages }
func (reviewBinding) folder() string       { return "" }
func (reviewBinding) entity() Entity       { return EntityReviews }

func (b reviewBinding) load(ctx context.Context, id uuid.UUID) (Values, ImageList, error) {
	r, err := b.store.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	v := b.empty()
	v["client_name"] = r.ClientName
	v["review_text"] = r.ReviewText
	v["role_or_location"] = deref(r.RoleOrLocation)
	v["rating"] = itoa(r.Rating)
	if !r.Visible {
		v["visible"] = "false"
	}
	return v, nil, nil
}

func buildReview(v Values) (*models.ClientReview, error) {
	r := &models.ClientReview{
		RoleOrLocation: optional(v, "role_or_location"),
		Visible:        flag(v, "visible", true),
	}
	var err error
	if r.ClientName, err = required(v, "client_name"); err != nil {
		return nil, err
	}
	if r.ReviewText, err = required(v, "review_text"); err != nil {
		return nil, err
	}
	if r.Rating, err = optionalInt(v, "rating"); err != nil {
		return nil, err
	}
	return r, nil
}

func (reviewBinding) validate(v Values, _ ImageList) error {
	_, err := buildReview(v)
	return err
}

func (b reviewBinding) save(ctx context.Context, editing *uuid.UUID, v Values, _ ImageList) (any, error) {
	r, err := buildReview(v)
	if err != nil {
		return nil, err
	}
	if editing == nil {
		return r, b.store.Add(ctx, r)
	}
	r.ID = *editing
	return r, b.store.Update(ctx, r)
}

func blank(fields []string) Values {
	v := make(Values, len(fields))
	for _, f := range fields {
		v[f] = ""
	}
	return v
}
