package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record carries the server-assigned identity shared by every table.
type Record struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null;index"`
}

func (r *Record) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// All returns one zero value of every model, in migration order.
func All() []any {
	return []any{
		&Project{},
		&TeamMember{},
		&JobApplication{},
		&ContactMessage{},
		&ClientReview{},
	}
}
