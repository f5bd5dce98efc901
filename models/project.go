package models

import (
	"strings"

	"gorm.io/datatypes"
)

// Project is one entry of the public portfolio grid.
type Project struct {
	Record
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Platform     string                      `json:"platform" db:"platform" gorm:"type:text;not null"`
	Technologies string                      `json:"technologies" db:"technologies" gorm:"type:text;not null"`
	ImageURL     *string                     `json:"image_url" db:"image_url" gorm:"type:text"`
	ImageURLs    datatypes.JSONSlice[string] `json:"image_urls" db:"image_urls"`
	ProjectLink  *string                     `json:"project_link" db:"project_link" gorm:"type:text"`
}

func (Project) TableName() string { return "portfolio_projects" }

// Images returns the ordered image list, falling back to the legacy single image for
// rows written before the list existed.
func (p Project) Images() []string {
	if len(p.ImageURLs) > 0 {
		return append([]string(nil), p.ImageURLs...)
	}
	if p.ImageURL != nil && *p.ImageURL != "" {
		return []string{*p.ImageURL}
	}
	return []string{}
}

// SetImages stores the ordered list and keeps image_url equal to its first entry.
func (p *Project) SetImages(urls []string) {
	p.ImageURLs = datatypes.JSONSlice[string](append([]string{}, urls...))
	if len(urls) == 0 {
		p.ImageURL = nil
		return
	}
	cover := urls[0]
	p.ImageURL = &cover
}

// TechnologyList splits the comma separated technologies column.
func (p Project) TechnologyList() []string {
	var out []string
	for _, t := range strings.Split(p.Technologies, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
