package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type ProjectStore interface {
	FindAll(ctx context.Context, opts database.ListOptions) ([]*models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TeamMemberStore interface {
	FindAll(ctx context.Context, opts database.ListOptions) ([]*models.TeamMember, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	Add(ctx context.Context, member *models.TeamMember) error
	Update(ctx context.Context, member *models.TeamMember) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type JobApplicationStore interface {
	FindAll(ctx context.Context, opts database.ListOptions) ([]*models.JobApplication, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContactMessageStore interface {
	FindAll(ctx context.Context, opts database.ListOptions) ([]*models.ContactMessage, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClientReviewStore interface {
	FindAll(ctx context.Context, opts database.ListOptions) ([]*models.ClientReview, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ClientReview, error)
	Add(ctx context.Context, review *models.ClientReview) error
	Update(ctx context.Context, review *models.ClientReview) error
	SetVisible(ctx context.Context, id uuid.UUID, visible bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Stores groups the table access the admin controllers need.
type Stores struct {
	Projects     ProjectStore
	TeamMembers  TeamMemberStore
	Applications JobApplicationStore
	Messages     ContactMessageStore
	Reviews      ClientReviewStore
}

// StoresFrom adapts the database repositories.
func StoresFrom(db database.Database) Stores {
	return Stores{
		Projects:     db.ProjectRepo(),
		TeamMembers:  db.TeamMemberRepo(),
		Applications: db.JobApplicationRepo(),
		Messages:     db.ContactMessageRepo(),
		Reviews:      db.ClientReviewRepo(),
	}
}
