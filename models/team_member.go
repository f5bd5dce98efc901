package models

// TeamMember is shown on the public team grid while Active.
type TeamMember struct {
	Record
	Name        string  `json:"name" db:"name" gorm:"type:text;not null"`
	Role        string  `json:"role" db:"role" gorm:"type:text;not null"`
	Bio         string  `json:"bio" db:"bio" gorm:"type:text;not null"`
	Email       *string `json:"email" db:"email" gorm:"type:text"`
	ImageURL    *string `json:"image_url" db:"image_url" gorm:"type:text"`
	LinkedInURL *string `json:"linkedin_url" db:"linkedin_url" gorm:"column:linkedin_url;type:text"`
	GithubURL   *string `json:"github_url" db:"github_url" gorm:"column:github_url;type:text"`
	Active      bool    `json:"active" db:"active" gorm:"not null;index"`
}

func (TeamMember) TableName() string { return "team_members" }
