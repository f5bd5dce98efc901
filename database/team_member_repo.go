package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type TeamMemberRepo struct {
	db *gorm.DB
}

func NewTeamMemberRepo(db *gorm.DB) *TeamMemberRepo {
	return &TeamMemberRepo{db}
}

// FindAll returns every member, including deactivated ones, newest first.
func (r *TeamMemberRepo) FindAll(ctx context.Context, opts ListOptions) ([]*models.TeamMember, error) {
	q, err := opts.apply(r.db.WithContext(ctx), "active", "role")
	if err != nil {
		return nil, err
	}
	var members []*models.TeamMember
	err = q.Find(&members).Error
	return members, err
}

// FindActive returns the members shown on the public site.
func (r *TeamMemberRepo) FindActive(ctx context.Context) ([]*models.TeamMember, error) {
	return r.FindAll(ctx, ListOptions{Filters: map[string]any{"active": true}})
}

func (r *TeamMemberRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *TeamMemberRepo) Add(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *TeamMemberRepo) Update(ctx context.Context, member *models.TeamMember) error {
	return updateAll(r.db.WithContext(ctx), &models.TeamMember{Record: models.Record{ID: member.ID}}, member)
}

// Deactivate hides a member from the public site while keeping the row.
func (r *TeamMemberRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.TeamMember{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
