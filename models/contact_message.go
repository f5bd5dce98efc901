package models

type ContactMessage struct {
	Record
	Name    string `json:"name" db:"name" gorm:"type:text;not null"`
	Email   string `json:"email" db:"email" gorm:"type:text;not null"`
	Subject string `json:"subject" db:"subject" gorm:"type:text;not null"`
	Message string `json:"message" db:"message" gorm:"type:text;not null"`
	Read    bool   `json:"read" db:"read" gorm:"not null"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
