package models

import "fmt"

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
)

// ApplicationStatuses lists the statuses in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusReviewed,
	StatusShortlisted,
	StatusRejected,
	StatusHired,
}

func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown application status %q", s)
	}
	return status, nil
}

// JobApplication is submitted from the careers page. Only Status changes afterwards.
type JobApplication struct {
	Record
	FullName        string            `json:"full_name" db:"full_name" gorm:"type:text;not null"`
	Email           string            `json:"email" db:"email" gorm:"type:text;not null"`
	Phone           *string           `json:"phone" db:"phone" gorm:"type:text"`
	Position        string            `json:"position" db:"position" gorm:"type:text;not null;index"`
	ExperienceYears *int              `json:"experience_years" db:"experience_years"`
	ResumeURL       *string           `json:"resume_url" db:"resume_url" gorm:"type:text"`
	CoverLetter     *string           `json:"cover_letter" db:"cover_letter" gorm:"type:text"`
	PortfolioURL    *string           `json:"portfolio_url" db:"portfolio_url" gorm:"type:text"`
	LinkedInURL     *string           `json:"linkedin_url" db:"linkedin_url" gorm:"column:linkedin_url;type:text"`
	GithubURL       *string           `json:"github_url" db:"github_url" gorm:"column:github_url;type:text"`
	Status          ApplicationStatus `json:"status" db:"status" gorm:"type:text;not null;index"`
	Notes           *string           `json:"notes" db:"notes" gorm:"type:text"`
}

func (JobApplication) TableName() string { return "job_applications" }
