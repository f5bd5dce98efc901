package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns projects newest first.
func (r *ProjectRepo) FindAll(ctx context.Context, opts ListOptions) ([]*models.Project, error) {
	q, err := opts.apply(r.db.WithContext(ctx), "platform")
	if err != nil {
		return nil, err
	}
	var projects []*models.Project
	err = q.Find(&projects).Error
	return projects, err
}

// FindRecent returns at most limit projects, newest first.
func (r *ProjectRepo) FindRecent(ctx context.Context, limit int) ([]*models.Project, error) {
	return r.FindAll(ctx, ListOptions{Limit: limit})
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update overwrites every editable column of an existing project.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return updateAll(r.db.WithContext(ctx), &models.Project{Record: models.Record{ID: project.ID}}, project)
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Project{}, id)
}
