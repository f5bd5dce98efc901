package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type JobApplicationRepo struct {
	db *gorm.DB
}

func NewJobApplicationRepo(db *gorm.DB) *JobApplicationRepo {
	return &JobApplicationRepo{db}
}

// FindAll returns applications newest first, optionally narrowed by status and position.
func (r *JobApplicationRepo) FindAll(ctx context.Context, opts ListOptions) ([]*models.JobApplication, error) {
	q, err := opts.apply(r.db.WithContext(ctx), "status", "position")
	if err != nil {
		return nil, err
	}
	var applications []*models.JobApplication
	err = q.Find(&applications).Error
	return applications, err
}

func (r *JobApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	var application models.JobApplication
	if err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// Positions returns the distinct positions applied for, used to build the filter list.
func (r *JobApplicationRepo) Positions(ctx context.Context) ([]string, error) {
	var positions []string
	err := r.db.WithContext(ctx).Model(&models.JobApplication{}).
		Distinct("position").Order("position").Pluck("position", &positions).Error
	return positions, err
}

func (r *JobApplicationRepo) Add(ctx context.Context, application *models.JobApplication) error {
	if application.Status == "" {
		application.Status = models.StatusPending
	}
	return r.db.WithContext(ctx).Create(application).Error
}

// UpdateStatus changes only the status column.
func (r *JobApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	res := r.db.WithContext(ctx).Model(&models.JobApplication{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *JobApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.JobApplication{}, id)
}
