package models

import (
	"time"

	"github.com/google/uuid"
)

// Internship is an opportunity posting accepted through the
// region/dedup gate. The (title, company_name) pair is unique among
// stored postings.
type Internship struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title          string     `gorm:"type:text;not null;uniqueIndex:idx_internships_title_company" json:"title"`
	CompanyName    string     `gorm:"type:text;not null;uniqueIndex:idx_internships_title_company" json:"company_name"`
	Location       string     `gorm:"type:text" json:"location"`
	Description    string     `gorm:"type:text" json:"description"`
	RequiredSkills string     `gorm:"type:text" json:"required_skills"`
	PostingURL     string     `gorm:"type:text" json:"posting_url"`
	PostedDate     *time.Time `gorm:"type:timestamp" json:"posted_date,omitempty"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	InRegion       bool       `gorm:"not null;default:false" json:"in_region"`
	Source         string     `gorm:"type:text" json:"source"`
	EmbeddingRef   string     `gorm:"type:text" json:"-"`
	CreatedAt      time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (i *Internship) TableName() string {
	return "internships"
}
