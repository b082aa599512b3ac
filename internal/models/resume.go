package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume is the candidate profile built from one parsed resume file.
// Skills and outcomes are stored comma-separated, already lowercased
// and trimmed. The embedding is immutable after creation; re-uploading
// a resume creates a fresh row.
type Resume struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID        *uuid.UUID `gorm:"type:uuid" json:"student_id,omitempty"`
	Filename         string     `gorm:"type:text" json:"filename"`
	OriginalFileName string     `gorm:"type:text" json:"original_filename"`
	FilePath         string     `gorm:"type:text" json:"file_path"`
	ParsedText       string     `gorm:"type:text" json:"-"`
	Skills           string     `gorm:"type:text" json:"skills"`
	Outcomes         string     `gorm:"type:text" json:"outcomes"`
	GPA              *float64   `gorm:"type:decimal(3,2)" json:"gpa,omitempty"`
	EmbeddingRef     string     `gorm:"type:text" json:"-"`
	CreatedAt        time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	Student *Student `gorm:"foreignKey:StudentID" json:"-"`
}

func (r *Resume) TableName() string {
	return "resumes"
}
