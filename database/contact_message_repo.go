package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

func (r *ContactMessageRepo) FindAll(ctx context.Context, opts ListOptions) ([]*models.ContactMessage, error) {
	q, err := opts.apply(r.db.WithContext(ctx), "read")
	if err != nil {
		return nil, err
	}
	var messages []*models.ContactMessage
	err = q.Find(&messages).Error
	return messages, err
}

func (r *ContactMessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *ContactMessageRepo) Add(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// MarkRead flips read to true. Already-read messages are left untouched.
func (r *ContactMessageRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("id = ? AND read = ?", id, false).Update("read", true).Error
}

func (r *ContactMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.ContactMessage{}, id)
}
