package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type ClientReviewRepo struct {
	db *gorm.DB
}

func NewClientReviewRepo(db *gorm.DB) *ClientReviewRepo {
	return &ClientReviewRepo{db}
}

func (r *ClientReviewRepo) FindAll(ctx context.Context, opts ListOptions) ([]*models.ClientReview, error) {
	q, err := opts.apply(r.db.WithContext(ctx), "visible")
	if err != nil {
		return nil, err
	}
	var reviews []*models.ClientReview
	err = q.Find(&reviews).Error
	return reviews, err
}

// FindVisible returns at most limit published reviews, newest first.
func (r *ClientReviewRepo) FindVisible(ctx context.Context, limit int) ([]*models.ClientReview, error) {
	return r.FindAll(ctx, ListOptions{Filters: map[string]any{"visible": true}, Limit: limit})
}

func (r *ClientReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ClientReview, error) {
	var review models.ClientReview
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ClientReviewRepo) Add(ctx context.Context, review *models.ClientReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ClientReviewRepo) Update(ctx context.Context, review *models.ClientReview) error {
	return updateAll(r.db.WithContext(ctx), &models.ClientReview{Record: models.Record{ID: review.ID}}, review)
}

func (r *ClientReviewRepo) SetVisible(ctx context.Context, id uuid.UUID, visible bool) error {
	res := r.db.WithContext(ctx).Model(&models.ClientReview{}).Where("id = ?", id).Update("visible", visible)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ClientReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.ClientReview{}, id)
}
