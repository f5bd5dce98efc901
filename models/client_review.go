package models

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// ClientReview stores the rating as entered; it is clamped only when displayed.
type ClientReview struct {
	Record
	ClientName     string  `json:"client_name" db:"client_name" gorm:"type:text;not null"`
	ReviewText     string  `json:"review_text" db:"review_text" gorm:"type:text;not null"`
	RoleOrLocation *string `json:"role_or_location" db:"role_or_location" gorm:"type:text"`
	Rating         *int    `json:"rating" db:"rating"`
	Visible        bool    `json:"visible" db:"visible" gorm:"not null;index"`
}

func (ClientReview) TableName() string { return "client_reviews" }

// DisplayRating clamps the stored rating into [1,5], treating a missing or zero rating as 5.
func (r ClientReview) DisplayRating() int {
	if r.Rating == nil || *r.Rating == 0 {
		return DefaultRating
	}
	switch {
	case *r.Rating < MinRating:
		return MinRating
	case *r.Rating > MaxRating:
		return MaxRating
	}
	return *r.Rating
}
